package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

type Task struct {
	ID              string                  `gorm:"primaryKey;size:36" json:"id"`
	Title           string                  `gorm:"not null" json:"title"`
	Description     string                  `json:"description"`
	Category        string                  `gorm:"not null" json:"category"`
	Store           string                  `gorm:"not null" json:"store"`
	DropoffLocation string                  `gorm:"not null" json:"dropoff_location"`
	Urgency         string                  `json:"urgency"`
	RewardAmount    int64                   `gorm:"not null" json:"reward_amount"`
	EstimatedMins   int                     `gorm:"not null" json:"estimated_mins"`
	Status          constants.TaskStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	CurrentStatus   constants.CurrentStatus `gorm:"type:varchar(20)" json:"current_status,omitempty"`
	CreatedBy       string                  `gorm:"size:36;not null;index" json:"created_by"`
	AcceptedBy      *string                 `gorm:"size:36" json:"accepted_by,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
