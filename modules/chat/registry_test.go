package chat

import (
	"errors"
	"strings"
	"sync"
	"testing"

	domain "github.com/example/zzchat/domain/chat"
)

// captureSender records every message pushed through it.
type captureSender struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func (s *captureSender) Send(msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *captureSender) messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// failingSender rejects every send.
type failingSender struct{}

func (failingSender) Send(domain.Message) error {
	return errors.New("connection gone")
}

func TestNewConn_Defaults(t *testing.T) {
	conn := NewConn("id1", "", "", &captureSender{})
	if conn.Nick != DefaultNick {
		t.Errorf("Expected nick %q, got %q", DefaultNick, conn.Nick)
	}
	if conn.Room != DefaultRoom {
		t.Errorf("Expected room %q, got %q", DefaultRoom, conn.Room)
	}
}

func TestNewConn_TruncatesLongNick(t *testing.T) {
	long := strings.Repeat("长", MaxNickLength+10)
	conn := NewConn("id1", long, "room1", &captureSender{})
	if got := len([]rune(conn.Nick)); got != MaxNickLength {
		t.Errorf("Expected nick truncated to %d runes, got %d", MaxNickLength, got)
	}
}

func TestRegistry_JoinAndLeave(t *testing.T) {
	r := NewRegistry()
	conn := NewConn("c1", "alice", "room1", &captureSender{})

	r.Join(conn)
	if got := r.RoomCount("room1"); got != 1 {
		t.Errorf("Expected 1 member, got %d", got)
	}

	// Re-joining the same connection must not duplicate it.
	r.Join(conn)
	if got := r.RoomCount("room1"); got != 1 {
		t.Errorf("Expected 1 member after double join, got %d", got)
	}

	r.Leave(conn)
	if got := r.RoomCount("room1"); got != 0 {
		t.Errorf("Expected 0 members after leave, got %d", got)
	}

	// The room itself stays registered after its last member leaves.
	if got := r.Rooms(); got != 1 {
		t.Errorf("Expected room to persist, got %d rooms", got)
	}
}

func TestRegistry_SnapshotIsDetached(t *testing.T) {
	r := NewRegistry()
	a := NewConn("a", "alice", "room1", &captureSender{})
	b := NewConn("b", "bob", "room1", &captureSender{})
	r.Join(a)
	r.Join(b)

	snap := r.Snapshot("room1")
	if len(snap) != 2 {
		t.Fatalf("Expected 2 members in snapshot, got %d", len(snap))
	}

	r.Leave(b)
	if len(snap) != 2 {
		t.Errorf("Expected snapshot to be unaffected by leave, got %d", len(snap))
	}
	if got := r.RoomCount("room1"); got != 1 {
		t.Errorf("Expected 1 live member, got %d", got)
	}
}

func TestRegistry_ClientCount(t *testing.T) {
	r := NewRegistry()
	r.Join(NewConn("a", "alice", "room1", &captureSender{}))
	r.Join(NewConn("b", "bob", "room2", &captureSender{}))
	r.Join(NewConn("c", "carol", "room2", &captureSender{}))

	if got := r.ClientCount(); got != 3 {
		t.Errorf("Expected 3 clients, got %d", got)
	}
}
