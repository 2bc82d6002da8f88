package chat

import (
	"strings"

	domain "github.com/example/zzchat/domain/chat"
)

// Validation constants
const (
	MaxNickLength    = 50
	MaxMessageLength = 4096
)

// Reserved sender names for server-generated messages.
const (
	SystemSender = "ZZ系统"
	BotSender    = "ZZ机器人"
)

// Defaults applied when the client supplies nothing at connect time.
const (
	DefaultRoom = "general"
	DefaultNick = "匿名用户"
)

// Trigger identifies a lookup keyword found in user text.
type Trigger int

// Triggers in priority order. When a message contains several trigger
// tokens, the lowest-valued match wins and the rest are ignored.
const (
	TriggerNone Trigger = iota
	TriggerMusic
	TriggerWeather
	TriggerMovie
	TriggerNews
	TriggerVideo
)

var triggerTokens = map[Trigger]string{
	TriggerMusic:   "🎵音乐",
	TriggerWeather: "⛅天气",
	TriggerMovie:   "🎬电影",
	TriggerNews:    "📰新闻",
	TriggerVideo:   "📺b站视频",
}

// scanOrder is the fixed priority order for trigger matching.
var scanOrder = []Trigger{TriggerMusic, TriggerWeather, TriggerMovie, TriggerNews, TriggerVideo}

// cannedReplies are the bot answers for triggers with no wired adapter.
// The AI assistant entry is reserved; its trigger is not scanned.
var cannedReplies = map[string]string{
	"🤖成小理":  "🤖成小理 功能接口已预留，正在建设中…",
	"🎵音乐":   "正在处理 🎵音乐 请求… 🎵",
	"🎬电影":   "正在处理 🎬电影 请求… 🎬",
	"⛅天气":   "正在处理 ⛅天气 请求… ⛅",
	"📰新闻":   "正在处理 📰新闻 请求… 📰",
	"📺b站视频": "正在处理 📺b站视频 请求… ▶️",
}

const genericReply = "功能接口已预留，正在建设中…"

// Token returns the literal keyword for a trigger, or "" for TriggerNone.
func (t Trigger) Token() string {
	return triggerTokens[t]
}

func (t Trigger) String() string {
	switch t {
	case TriggerMusic:
		return "music"
	case TriggerWeather:
		return "weather"
	case TriggerMovie:
		return "movie"
	case TriggerNews:
		return "news"
	case TriggerVideo:
		return "video"
	default:
		return "none"
	}
}

// ScanTriggers finds the highest-priority trigger contained in content
// and extracts its argument, if any. Returns TriggerNone when no
// keyword is present.
func ScanTriggers(content string) (Trigger, string) {
	for _, t := range scanOrder {
		token := triggerTokens[t]
		if !strings.Contains(content, token) {
			continue
		}
		if t == TriggerWeather {
			if arg := bracketArg(content); arg != "" {
				return t, arg
			}
		}
		return t, tokenArg(content, token)
	}
	return TriggerNone, ""
}

// bracketArg extracts the argument from bracket syntax, e.g. ⛅天气[成都].
func bracketArg(content string) string {
	start := strings.Index(content, "[")
	end := strings.Index(content, "]")
	if start < 0 || end < 0 || start >= end {
		return ""
	}
	return strings.TrimSpace(content[start+1 : end])
}

// tokenArg extracts the argument glued to the trigger token or supplied
// as the following whitespace-separated field.
func tokenArg(content, token string) string {
	parts := strings.Fields(content)
	for i, p := range parts {
		if !strings.Contains(p, token) {
			continue
		}
		if len(p) > len(token) {
			return strings.TrimSpace(strings.Replace(p, token, "", 1))
		}
		if i+1 < len(parts) {
			return strings.TrimSpace(parts[i+1])
		}
		return ""
	}
	return ""
}

// NewSystemMessage builds a system notice. The timestamp is stamped by
// the engine at broadcast time.
func NewSystemMessage(content string) domain.Message {
	return domain.Message{
		Type:    domain.TypeSystem,
		Content: content,
		Sender:  SystemSender,
	}
}

// NewUserMessage builds a plain user message.
func NewUserMessage(nick, content string) domain.Message {
	return domain.Message{
		Type:    domain.TypeMessage,
		Content: content,
		Sender:  nick,
	}
}

// NewBotReply builds the canned "coming soon" reply for a trigger.
func NewBotReply(t Trigger) domain.Message {
	content, ok := cannedReplies[t.Token()]
	if !ok {
		content = genericReply
	}
	return domain.Message{
		Type:    domain.TypeMessage,
		Content: content,
		Sender:  BotSender,
	}
}

// NewCardMessage wraps a lookup result card as a broadcast message.
func NewCardMessage(card *domain.Card) domain.Message {
	return domain.Message{
		Type:    card.Type,
		Content: card.Content,
		Sender:  BotSender,
	}
}
