package storage

// StoredMessage is one row of the durable per-room message log.
// Structured card content is serialized to text before it gets here.
type StoredMessage struct {
	ID      uint   `gorm:"primarykey" json:"-"`
	Room    string `gorm:"size:100;not null;index:idx_messages_room_ts" json:"room"`
	Sender  string `gorm:"size:100;not null" json:"sender"`
	Type    string `gorm:"size:32;not null" json:"type"`
	Content string `gorm:"not null" json:"content"`
	TS      int64  `gorm:"column:ts;not null;index:idx_messages_room_ts" json:"ts"`
}

// TableName sets the messages table name.
func (StoredMessage) TableName() string {
	return "messages"
}

// UserCredential is one registered user. Records are created at
// registration and never mutated.
type UserCredential struct {
	ID           uint   `gorm:"primarykey"`
	Nick         string `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:128;not null"`
	Salt         string `gorm:"size:64;not null"`
	CreatedAt    int64  `gorm:"not null"`
}

// TableName sets the users table name.
func (UserCredential) TableName() string {
	return "users"
}
