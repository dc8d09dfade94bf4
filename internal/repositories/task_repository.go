package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskSpec carries the poster-supplied fields of a new task.
type TaskSpec struct {
	Title           string
	Description     string
	Category        string
	Store           string
	DropoffLocation string
	Urgency         string
	RewardAmount    int64
	EstimatedMins   int
}

func (r *TaskRepository) Create(ctx context.Context, spec TaskSpec, posterID string) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:              uuid.NewString(),
		Title:           spec.Title,
		Description:     spec.Description,
		Category:        spec.Category,
		Store:           spec.Store,
		DropoffLocation: spec.DropoffLocation,
		Urgency:         spec.Urgency,
		RewardAmount:    spec.RewardAmount,
		EstimatedMins:   spec.EstimatedMins,
		Status:          constants.StatusOpen,
		CreatedBy:       posterID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, apperrors.TransientIO(err)
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.TransientIO(err)
	}
	return &task, nil
}

func (r *TaskRepository) ListOpen(ctx context.Context, excludeUserID string, limit, offset int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", constants.StatusOpen).
		Order("created_at desc").
		Limit(limit).Offset(offset)

	if excludeUserID != "" {
		query = query.Where("created_by <> ?", excludeUserID)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, apperrors.TransientIO(err)
	}

	return tasks, nil
}

// ClaimOpen is the conditional write that decides a claim race. The
// guard on status = open makes the database serialize concurrent
// claimants; exactly one caller observes RowsAffected = 1.
func (r *TaskRepository) ClaimOpen(ctx context.Context, taskID, workerID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ? AND created_by <> ?", taskID, constants.StatusOpen, workerID).
		Updates(map[string]interface{}{
			"status":         constants.StatusAccepted,
			"accepted_by":    workerID,
			"current_status": constants.CurrentAccepted,
			"updated_at":     time.Now().UTC(),
		})

	if res.Error != nil {
		return false, apperrors.TransientIO(res.Error)
	}

	return res.RowsAffected > 0, nil
}

// CancelIfActive moves an open or accepted task to cancelled. Clearing
// accepted_by keeps the claimant invariant: a cancelled task has none.
func (r *TaskRepository) CancelIfActive(ctx context.Context, taskID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status IN ?", taskID, []constants.TaskStatus{constants.StatusOpen, constants.StatusAccepted}).
		Updates(map[string]interface{}{
			"status":         constants.StatusCancelled,
			"accepted_by":    nil,
			"current_status": "",
			"updated_at":     time.Now().UTC(),
		})

	if res.Error != nil {
		return false, apperrors.TransientIO(res.Error)
	}

	return res.RowsAffected > 0, nil
}

// AdvancePhase moves current_status from exactly `from` to `to`. The
// guard on the prior phase collapses duplicate retries by the same
// actor into a single effective write.
func (r *TaskRepository) AdvancePhase(ctx context.Context, taskID string, from, to constants.CurrentStatus) (bool, error) {
	updates := map[string]interface{}{
		"current_status": to,
		"updated_at":     time.Now().UTC(),
	}
	if to == constants.CurrentCompleted {
		updates["status"] = constants.StatusCompleted
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ? AND current_status = ?", taskID, constants.StatusAccepted, from).
		Updates(updates)

	if res.Error != nil {
		return false, apperrors.TransientIO(res.Error)
	}

	return res.RowsAffected > 0, nil
}
