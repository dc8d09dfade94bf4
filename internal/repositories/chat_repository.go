package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// ErrRoomExists reports that another caller already provisioned the
// room for this task. The unique index on chat_rooms.task_id is the
// arbiter; callers resolve it by re-reading the winner's row.
var ErrRoomExists = errors.New("chat room already exists for task")

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateRoom inserts the room and both memberships in one transaction.
// A unique-constraint violation on task_id surfaces as ErrRoomExists.
func (r *ChatRepository) CreateRoom(ctx context.Context, taskID string, memberIDs []string) (*model.ChatRoom, error) {
	room := &model.ChatRoom{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			membership := &model.ChatMembership{RoomID: room.ID, UserID: userID}
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomExists
		}
		return nil, apperrors.TransientIO(err)
	}

	return room, nil
}

func (r *ChatRepository) FindRoomByTask(ctx context.Context, taskID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.WithContext(ctx).First(&room, "task_id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, apperrors.TransientIO(err)
	}
	return &room, nil
}

func (r *ChatRepository) FindRoomByID(ctx context.Context, roomID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.WithContext(ctx).First(&room, "id = ?", roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, apperrors.TransientIO(err)
	}
	return &room, nil
}

func (r *ChatRepository) FindMembership(ctx context.Context, roomID, userID string) (*model.ChatMembership, error) {
	var membership model.ChatMembership
	err := r.db.WithContext(ctx).
		First(&membership, "room_id = ? AND user_id = ?", roomID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotRoomMember
		}
		return nil, apperrors.TransientIO(err)
	}
	return &membership, nil
}

func (r *ChatRepository) ListMemberships(ctx context.Context, roomID string) ([]model.ChatMembership, error) {
	var memberships []model.ChatMembership
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("user_id asc").
		Find(&memberships).Error
	if err != nil {
		return nil, apperrors.TransientIO(err)
	}
	return memberships, nil
}

// SetLastRead is only ever called with the reading user's own id.
func (r *ChatRepository) SetLastRead(ctx context.Context, roomID, userID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.ChatMembership{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("last_read_at", at)

	if res.Error != nil {
		return apperrors.TransientIO(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotRoomMember
	}
	return nil
}

// SetLastMessage refreshes the room's denormalized inbox preview.
func (r *ChatRepository) SetLastMessage(ctx context.Context, roomID, preview string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.ChatRoom{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"last_message":    preview,
			"last_message_at": at,
		})

	if res.Error != nil {
		return apperrors.TransientIO(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}
