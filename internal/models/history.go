package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

// StatusHistoryEntry is one immutable record of a claimed task's
// execution phase changing. Entries are append-only; nothing in the
// codebase updates or deletes them.
type StatusHistoryEntry struct {
	ID        string                  `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string                  `gorm:"size:36;not null;index" json:"task_id"`
	Status    constants.CurrentStatus `gorm:"type:varchar(20);not null" json:"status"`
	ActorID   string                  `gorm:"size:36;not null" json:"actor_id"`
	Note      string                  `json:"note,omitempty"`
	PhotoRef  string                  `json:"photo_ref,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}
