package chat

import (
	"log"
	"time"

	domain "github.com/example/zzchat/domain/chat"
)

// PublishFunc hands a delivered message off for durable persistence.
type PublishFunc func(msg domain.Message)

// Engine fans messages out to a room's live membership and then hands
// them off for durable append. Delivery failures to individual
// connections are swallowed: the connection is reaped on its own close
// event, not treated as a room-wide failure.
type Engine struct {
	registry *Registry
	publish  PublishFunc
}

// NewEngine creates a broadcast engine. publish may be nil, in which
// case messages are delivered but not persisted.
func NewEngine(registry *Registry, publish PublishFunc) *Engine {
	return &Engine{registry: registry, publish: publish}
}

// Broadcast stamps a server-side timestamp if the message has none,
// delivers the message to every connection in the room's membership
// snapshot at call time, and then emits it for persistence.
// Persistence failure is logged and never surfaced: delivery has
// already happened by then.
func (e *Engine) Broadcast(roomID string, msg domain.Message) {
	if msg.TS == 0 {
		msg.TS = time.Now().UnixMilli()
	}

	// Live payloads carry no room field; clients already know it.
	wire := msg
	wire.Room = ""
	for _, c := range e.registry.Snapshot(roomID) {
		if err := c.Send(wire); err != nil {
			log.Printf("[chat] drop send to %s (%s): %v", c.ID, c.Nick, err)
		}
	}

	if e.publish != nil {
		stored := msg
		stored.Room = roomID
		e.publish(stored)
	}
}
