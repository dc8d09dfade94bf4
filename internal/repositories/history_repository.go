package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// HistoryRepository is the append-only ledger of execution phase
// changes. Append and ListForTask are deliberately its only methods.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, taskID string, status constants.CurrentStatus, actorID, note, photoRef string) (*model.StatusHistoryEntry, error) {
	entry := &model.StatusHistoryEntry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Status:    status,
		ActorID:   actorID,
		Note:      note,
		PhotoRef:  photoRef,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.TransientIO(err)
	}

	return entry, nil
}

func (r *HistoryRepository) ListForTask(ctx context.Context, taskID string) ([]model.StatusHistoryEntry, error) {
	var entries []model.StatusHistoryEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.TransientIO(err)
	}
	return entries, nil
}
