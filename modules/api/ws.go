package api

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	domain "github.com/example/zzchat/domain/chat"
	"github.com/example/zzchat/modules/chat"
)

// maxInboundBytes bounds a single inbound frame. Oversized frames
// close the connection rather than being buffered.
const maxInboundBytes = 64 * 1024

// inboundMessage is what clients send over the socket. Clients that
// send bare text instead of JSON are accepted too.
type inboundMessage struct {
	Content string `json:"content"`
}

// wsSender adapts a websocket connection to the chat Sender interface.
// Serializes writes; fan-out may hit the same socket from several
// goroutines.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// handleWebSocket handles WebSocket connections at /ws.
func (m *APIModule) handleWebSocket(c *websocket.Conn) {
	c.SetReadLimit(maxInboundBytes)

	room := c.Query("room", chat.DefaultRoom)
	nick := c.Query("nick", chat.DefaultNick)

	conn := chat.NewConn(uuid.New().String(), nick, room, &wsSender{conn: c})

	m.chat.Connect(conn)
	defer func() {
		m.chat.Disconnect(conn)
		log.Printf("[api] WebSocket client disconnected: %s (%s)", conn.ID, conn.Nick)
	}()

	log.Printf("[api] WebSocket client connected: %s (%s) room=%s", conn.ID, conn.Nick, conn.Room)

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[api] Client %s closed connection", conn.ID)
			} else {
				log.Printf("[api] Read error from %s: %v", conn.ID, err)
			}
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg.Content = string(raw)
		}

		m.chat.Route(conn, msg.Content)
	}
}
