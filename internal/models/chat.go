package model

import "time"

// ChatRoom is the single conversation attached to a claimed task. The
// unique index on TaskID is what arbitrates concurrent provisioning.
type ChatRoom struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID        string     `gorm:"size:36;not null;uniqueIndex" json:"task_id"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ChatMembership ties a user to a room. Exactly two rows exist per
// room: the task's poster and its claimant. LastReadAt is written only
// by the owning user.
type ChatMembership struct {
	RoomID     string     `gorm:"primaryKey;size:36" json:"room_id"`
	UserID     string     `gorm:"primaryKey;size:36" json:"user_id"`
	LastReadAt *time.Time `json:"last_read_at,omitempty"`
}

type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RoomID    string    `gorm:"size:36;not null;index" json:"room_id"`
	SenderID  string    `gorm:"size:36;not null" json:"sender_id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SeenBy reports whether the other party has read this message, given
// that party's last_read_at.
func (m ChatMessage) SeenBy(lastReadAt *time.Time) bool {
	if lastReadAt == nil {
		return false
	}
	return !m.CreatedAt.After(*lastReadAt)
}
