package services

import (
	"context"
	"time"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

// Persistence is injected behind these interfaces so tests and callers
// can substitute fakes; the gorm repositories are the production
// implementations.

type TaskStore interface {
	Create(ctx context.Context, spec repository.TaskSpec, posterID string) (*model.Task, error)
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListOpen(ctx context.Context, excludeUserID string, limit, offset int) ([]model.Task, error)
	ClaimOpen(ctx context.Context, taskID, workerID string) (bool, error)
	CancelIfActive(ctx context.Context, taskID string) (bool, error)
	AdvancePhase(ctx context.Context, taskID string, from, to constants.CurrentStatus) (bool, error)
}

type HistoryStore interface {
	Append(ctx context.Context, taskID string, status constants.CurrentStatus, actorID, note, photoRef string) (*model.StatusHistoryEntry, error)
	ListForTask(ctx context.Context, taskID string) ([]model.StatusHistoryEntry, error)
}

type ChatStore interface {
	CreateRoom(ctx context.Context, taskID string, memberIDs []string) (*model.ChatRoom, error)
	FindRoomByTask(ctx context.Context, taskID string) (*model.ChatRoom, error)
	FindRoomByID(ctx context.Context, roomID string) (*model.ChatRoom, error)
	FindMembership(ctx context.Context, roomID, userID string) (*model.ChatMembership, error)
	ListMemberships(ctx context.Context, roomID string) ([]model.ChatMembership, error)
	SetLastRead(ctx context.Context, roomID, userID string, at time.Time) error
	SetLastMessage(ctx context.Context, roomID, preview string, at time.Time) error
}

type MessageStore interface {
	Append(ctx context.Context, roomID, senderID, text string) (*model.ChatMessage, error)
	ListForRoom(ctx context.Context, roomID string, limit, offset int) ([]model.ChatMessage, error)
}
