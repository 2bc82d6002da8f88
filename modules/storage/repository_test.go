package storage

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&StoredMessage{}, &UserCredential{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestMessageRepository_AppendAndHistory(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	for i, content := range []string{"first", "second", "third"} {
		if err := repo.Append("general", "alice", "message", content, int64(1000+i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	rows, err := repo.History("general", 10, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(rows))
	}
	for i, want := range []string{"first", "second", "third"} {
		if rows[i].Content != want {
			t.Errorf("Expected %q at position %d, got %q", want, i, rows[i].Content)
		}
	}
}

func TestMessageRepository_HistoryAscendingRegardlessOfInsertOrder(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	_ = repo.Append("general", "alice", "message", "late", 3000)
	_ = repo.Append("general", "alice", "message", "early", 1000)
	_ = repo.Append("general", "alice", "message", "middle", 2000)

	rows, err := repo.History("general", 10, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	got := []string{rows[0].Content, rows[1].Content, rows[2].Content}
	want := []string{"early", "middle", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected order %v, got %v", want, got)
			break
		}
	}
}

func TestMessageRepository_HistoryBeforeTS(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	for ts := int64(1000); ts <= 5000; ts += 1000 {
		_ = repo.Append("general", "alice", "message", "m", ts)
	}

	// before_ts is strictly less-than.
	rows, err := repo.History("general", 10, 3000)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 messages before ts 3000, got %d", len(rows))
	}
	for _, row := range rows {
		if row.TS >= 3000 {
			t.Errorf("Expected ts < 3000, got %d", row.TS)
		}
	}
}

func TestMessageRepository_HistoryLimit(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	for ts := int64(1); ts <= 10; ts++ {
		_ = repo.Append("general", "alice", "message", "m", ts)
	}

	rows, err := repo.History("general", 3, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(rows))
	}
	// The limit keeps the earliest messages.
	if rows[0].TS != 1 || rows[2].TS != 3 {
		t.Errorf("Expected earliest messages, got ts %d..%d", rows[0].TS, rows[2].TS)
	}
}

func TestMessageRepository_HistoryIsScopedToRoom(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	_ = repo.Append("general", "alice", "message", "here", 1000)
	_ = repo.Append("other", "bob", "message", "elsewhere", 1001)

	rows, err := repo.History("general", 10, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Content != "here" {
		t.Errorf("Expected only room-scoped history, got %+v", rows)
	}
}

func TestMessageRepository_Clear(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	_ = repo.Append("general", "alice", "message", "m1", 1000)
	_ = repo.Append("general", "alice", "message", "m2", 2000)
	_ = repo.Append("other", "bob", "message", "keep", 3000)

	if err := repo.Clear("general"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	rows, _ := repo.History("general", 10, 0)
	if len(rows) != 0 {
		t.Errorf("Expected empty history after clear, got %d rows", len(rows))
	}
	kept, _ := repo.History("other", 10, 0)
	if len(kept) != 1 {
		t.Errorf("Expected other room untouched, got %d rows", len(kept))
	}
}

func TestCredentialRepository_CreateAndFind(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))

	cred := &UserCredential{Nick: "alice", PasswordHash: "h", Salt: "s", CreatedAt: 1}
	if err := repo.Create(cred); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByNick("alice")
	if err != nil {
		t.Fatalf("FindByNick failed: %v", err)
	}
	if found.PasswordHash != "h" || found.Salt != "s" {
		t.Errorf("Unexpected credential: %+v", found)
	}
}

func TestCredentialRepository_DuplicateNick(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))

	_ = repo.Create(&UserCredential{Nick: "alice", PasswordHash: "h", Salt: "s"})
	err := repo.Create(&UserCredential{Nick: "alice", PasswordHash: "h2", Salt: "s2"})
	if !errors.Is(err, ErrNickTaken) {
		t.Errorf("Expected ErrNickTaken, got %v", err)
	}
}

func TestCredentialRepository_UnknownNick(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))

	_, err := repo.FindByNick("ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
