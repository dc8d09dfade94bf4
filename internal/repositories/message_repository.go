package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// MessageRepository is the append-only per-room message log.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Append(ctx context.Context, roomID, senderID, text string) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperrors.TransientIO(err)
	}

	return msg, nil
}

// ListForRoom returns messages oldest first. The id tie-break keeps
// same-timestamp inserts in a stable total order.
func (r *MessageRepository) ListForRoom(ctx context.Context, roomID string, limit, offset int) ([]model.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc, id asc").
		Offset(offset)

	if limit > 0 {
		query = query.Limit(limit)
	}

	var msgs []model.ChatMessage
	if err := query.Find(&msgs).Error; err != nil {
		return nil, apperrors.TransientIO(err)
	}

	return msgs, nil
}
