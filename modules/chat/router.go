package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/example/zzchat/domain/chat"
)

// Adapter performs one external lookup and returns a structured card or
// an error whose text is suitable for an in-room system message.
type Adapter interface {
	Lookup(ctx context.Context, content string) (*domain.Card, error)
}

// Router inspects inbound client text, broadcasts the raw user message,
// and dispatches the first matching trigger to its adapter. Each
// connection's read loop calls Route serially, so a session's own
// messages are broadcast in submission order.
type Router struct {
	engine   *Engine
	adapters map[Trigger]Adapter
	timeout  time.Duration
}

// NewRouter creates a router with no adapters wired; triggers without
// an adapter get the canned bot reply.
func NewRouter(engine *Engine, timeout time.Duration) *Router {
	return &Router{
		engine:   engine,
		adapters: make(map[Trigger]Adapter),
		timeout:  timeout,
	}
}

// SetAdapters wires the lookup adapters. Called once at assembly time,
// before any connection is served.
func (r *Router) SetAdapters(adapters map[Trigger]Adapter) {
	for t, a := range adapters {
		r.adapters[t] = a
	}
}

// Route handles one inbound text from a connection. Empty or
// whitespace-only input is dropped silently.
func (r *Router) Route(conn *Conn, raw string) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return
	}
	if len(content) > MaxMessageLength {
		cut := MaxMessageLength
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	r.engine.Broadcast(conn.Room, NewUserMessage(conn.Nick, content))

	trigger, _ := ScanTriggers(content)
	if trigger == TriggerNone {
		return
	}

	adapter, ok := r.adapters[trigger]
	if !ok {
		r.engine.Broadcast(conn.Room, NewBotReply(trigger))
		return
	}

	// Lookups may suspend on the network; they run off the read loop.
	// A disconnect mid-request does not cancel the call: remaining room
	// members still receive the result.
	go r.dispatch(conn.Room, adapter, content)
}

// dispatch runs one adapter call under the lookup timeout and maps its
// result uniformly: a card on success, a system message on error.
func (r *Router) dispatch(roomID string, adapter Adapter, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	card, err := adapter.Lookup(ctx, content)
	if err != nil {
		r.engine.Broadcast(roomID, NewSystemMessage(err.Error()))
		return
	}
	r.engine.Broadcast(roomID, NewCardMessage(card))
}
