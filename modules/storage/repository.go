package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNickTaken is returned when the nick is already registered.
	ErrNickTaken = errors.New("昵称已存在")
	// ErrUserNotFound is returned when no credential record matches.
	ErrUserNotFound = errors.New("用户不存在")
)

// MessageRepository is the append-only message log. gorm serializes
// writes through its single sqlite connection, which is the mutual
// exclusion the log needs.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a message repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append durably inserts one message. Content is free-form text and is
// never rejected.
func (r *MessageRepository) Append(room, sender, mtype, content string, ts int64) error {
	row := StoredMessage{
		Room:    room,
		Sender:  sender,
		Type:    mtype,
		Content: content,
		TS:      ts,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// History returns up to limit messages for a room in ascending
// timestamp order. A positive beforeTS restricts to timestamps strictly
// less than it. Equal timestamps keep insertion order; callers must not
// rely on more than that.
func (r *MessageRepository) History(room string, limit int, beforeTS int64) ([]StoredMessage, error) {
	q := r.db.Where("room = ?", room)
	if beforeTS > 0 {
		q = q.Where("ts < ?", beforeTS)
	}

	var rows []StoredMessage
	if err := q.Order("ts ASC, id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return rows, nil
}

// Clear irreversibly deletes all messages for a room.
func (r *MessageRepository) Clear(room string) error {
	if err := r.db.Where("room = ?", room).Delete(&StoredMessage{}).Error; err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// CredentialRepository stores registered user credentials.
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a credential repository.
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create inserts a new credential record.
func (r *CredentialRepository) Create(cred *UserCredential) error {
	var count int64
	if err := r.db.Model(&UserCredential{}).Where("nick = ?", cred.Nick).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check nick: %w", err)
	}
	if count > 0 {
		return ErrNickTaken
	}
	if err := r.db.Create(cred).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNickTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByNick returns the credential record for a nick.
func (r *CredentialRepository) FindByNick(nick string) (*UserCredential, error) {
	var cred UserCredential
	if err := r.db.First(&cred, "nick = ?", nick).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &cred, nil
}
