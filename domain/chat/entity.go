package chat

// Message types understood by clients. Card types carry structured
// content; system and message types carry plain text.
const (
	TypeSystem       = "system"
	TypeMessage      = "message"
	TypeBilibiliCard = "bilibili_card"
	TypeMovieCard    = "movie_card"
	TypeMusicCard    = "music_card"
	TypeNewsCard     = "news_card"
	TypeWeatherCard  = "weather_card"
)

// Message is the unit of broadcast and persistence. Content is either a
// plain string or a structured card payload; when persisted, structured
// content is serialized to text. TS is milliseconds since epoch,
// assigned by the server at broadcast time. Room is omitted on the wire
// for live messages but populated on history items.
type Message struct {
	Room    string `json:"room,omitempty"`
	Type    string `json:"type"`
	Content any    `json:"content"`
	TS      int64  `json:"ts"`
	Sender  string `json:"sender"`
}

// Card is a structured lookup result to be broadcast into a room.
type Card struct {
	Type    string
	Content any
}
