package chat

import (
	"sync"

	domain "github.com/example/zzchat/domain/chat"
)

// Sender is the push capability of a connection's transport. Send
// returns an error when the underlying channel is already gone; the
// engine treats that as "recipient left" and moves on.
type Sender interface {
	Send(msg domain.Message) error
}

// Conn is one live client session, bound to exactly one room for its
// lifetime. It is owned by the registry's membership set for that room.
type Conn struct {
	ID     string
	Nick   string
	Room   string
	sender Sender
}

// NewConn creates a connection record. Empty nick and room fall back to
// the defaults; overlong nicks are truncated.
func NewConn(id, nick, room string, sender Sender) *Conn {
	if nick == "" {
		nick = DefaultNick
	}
	if runes := []rune(nick); len(runes) > MaxNickLength {
		nick = string(runes[:MaxNickLength])
	}
	if room == "" {
		room = DefaultRoom
	}
	return &Conn{ID: id, Nick: nick, Room: room, sender: sender}
}

// Send pushes a message through the connection's transport.
func (c *Conn) Send(msg domain.Message) error {
	return c.sender.Send(msg)
}

// Registry is the process-wide mapping from room identifier to the live
// set of member connections. Rooms are created lazily on first
// reference and live for the process lifetime; membership sets are
// small and bounded by concurrent users, so there is no eviction.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Conn]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Conn]bool),
	}
}

// room returns the membership set for roomID, creating it on first
// reference. Callers must hold the write lock.
func (r *Registry) room(roomID string) map[*Conn]bool {
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Conn]bool)
		r.rooms[roomID] = members
	}
	return members
}

// Join adds a connection to its room's membership set.
func (r *Registry) Join(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.room(c.Room)[c] = true
}

// Leave removes a connection from its room. The room itself stays
// registered even when empty.
func (r *Registry) Leave(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.room(c.Room), c)
}

// Snapshot returns the current members of a room. The returned slice is
// detached from the registry, so a broadcast iterates a stable
// membership even while connections come and go.
func (r *Registry) Snapshot(roomID string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	conns := make([]*Conn, 0, len(members))
	for c := range members {
		conns = append(conns, c)
	}
	return conns
}

// RoomCount returns the number of live connections in a room.
func (r *Registry) RoomCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}

// Rooms returns the number of rooms referenced so far.
func (r *Registry) Rooms() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// ClientCount returns the total number of live connections.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, members := range r.rooms {
		total += len(members)
	}
	return total
}
