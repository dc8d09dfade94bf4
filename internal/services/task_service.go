package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/events"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// TaskService owns the task state machine. Every task mutation in the
// system goes through one of its methods.
type TaskService struct {
	store   TaskStore
	history HistoryStore
	chat    *ChatService
	bus     *events.Bus
}

func NewTaskService(store TaskStore, history HistoryStore, chat *ChatService, bus *events.Bus) *TaskService {
	return &TaskService{
		store:   store,
		history: history,
		chat:    chat,
		bus:     bus,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, spec repository.TaskSpec, posterID string) (*model.Task, error) {
	if posterID == "" {
		return nil, apperrors.Validation("poster id is required")
	}
	if err := validateTaskSpec(spec); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, spec, posterID)
}

func validateTaskSpec(spec repository.TaskSpec) error {
	required := map[string]string{
		"title":            spec.Title,
		"category":         spec.Category,
		"store":            spec.Store,
		"dropoff_location": spec.DropoffLocation,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return apperrors.Validation(field + " is required")
		}
	}
	if spec.RewardAmount <= 0 {
		return apperrors.Validation("reward_amount must be positive")
	}
	if spec.EstimatedMins <= 0 {
		return apperrors.Validation("estimated_mins must be positive")
	}
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.getTask(ctx, id)
}

func (s *TaskService) getTask(ctx context.Context, id string) (*model.Task, error) {
	return retryTransient(ctx, func() (*model.Task, error) {
		return s.store.FindByID(ctx, id)
	})
}

func (s *TaskService) ListOpenTasks(ctx context.Context, excludeUserID string, limit, offset int) ([]model.Task, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return retryTransient(ctx, func() ([]model.Task, error) {
		return s.store.ListOpen(ctx, excludeUserID, limit, offset)
	})
}

// ClaimTask atomically binds workerID as the task's claimant. The
// conditional write in the store decides the race; this method only
// interprets its outcome. A retried claim by the winning worker
// returns the task unchanged.
func (s *TaskService) ClaimTask(ctx context.Context, taskID, workerID string) (*model.Task, error) {
	if workerID == "" {
		return nil, apperrors.Validation("worker id is required")
	}

	claimed, err := s.store.ClaimOpen(ctx, taskID, workerID)
	if err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !claimed {
		switch {
		case task.CreatedBy == workerID:
			return nil, apperrors.Validation("posters cannot claim their own task")
		case task.AcceptedBy != nil && *task.AcceptedBy == workerID:
			// the worker already won an earlier attempt
			return task, nil
		case task.Status.Terminal():
			return nil, apperrors.InvalidTransition("task is no longer claimable")
		default:
			return nil, apperrors.ErrClaimConflict
		}
	}

	if _, err := s.history.Append(ctx, taskID, constants.CurrentAccepted, workerID, "", ""); err != nil {
		log.WithFields(log.Fields{"task": taskID}).Errorf("history append after claim failed: %v", err)
	}

	if _, err := s.chat.EnsureRoomForTask(ctx, taskID); err != nil {
		// the room is re-provisioned lazily on first chat access
		log.WithFields(log.Fields{"task": taskID}).Errorf("room provisioning after claim failed: %v", err)
	}

	s.bus.Publish(events.TaskTopic, events.Event{
		Kind:    events.KindTaskClaimed,
		TaskID:  taskID,
		ActorID: workerID,
		Status:  string(task.Status),
		At:      time.Now().UTC(),
	})

	return task, nil
}

// CancelTask is poster-only and legal from open or accepted. The
// transition preserved here can abandon a worker mid-task; the event
// lets a notification layer tell them.
func (s *TaskService) CancelTask(ctx context.Context, taskID, posterID string) (*model.Task, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != posterID {
		return nil, apperrors.ErrNotTaskPoster
	}

	cancelled, err := s.store.CancelIfActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		task, err = s.getTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.InvalidTransition(fmt.Sprintf("task is already %s", task.Status))
	}

	task, err = s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TaskTopic, events.Event{
		Kind:    events.KindTaskCancelled,
		TaskID:  taskID,
		ActorID: posterID,
		Status:  string(task.Status),
		At:      time.Now().UTC(),
	})

	return task, nil
}

// AdvanceStatus moves the execution phase one step forward. Repeating
// the phase the task is already in is a no-op, so a client retrying
// after a dropped response never sees an error for its own success.
func (s *TaskService) AdvanceStatus(ctx context.Context, taskID, actorID string, next constants.CurrentStatus, note, photoRef string) (*model.Task, error) {
	if !constants.ValidCurrentStatus(next) {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", next))
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AcceptedBy == nil || *task.AcceptedBy != actorID {
		return nil, apperrors.ErrNotTaskClaimant
	}

	if task.Status != constants.StatusAccepted {
		if task.Status == constants.StatusCompleted && next == task.CurrentStatus {
			return task, nil
		}
		return nil, apperrors.InvalidTransition(fmt.Sprintf("task is %s, not in progress", task.Status))
	}
	if next == task.CurrentStatus {
		return task, nil
	}

	expected, ok := constants.NextCurrentStatus(task.CurrentStatus)
	if !ok || next != expected {
		return nil, apperrors.InvalidTransition(fmt.Sprintf("cannot move from %s to %s", task.CurrentStatus, next))
	}

	moved, err := s.store.AdvancePhase(ctx, taskID, task.CurrentStatus, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		// a concurrent duplicate call by the same actor may have won
		task, err = s.getTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if task.CurrentStatus == next {
			return task, nil
		}
		return nil, apperrors.InvalidTransition(fmt.Sprintf("cannot move from %s to %s", task.CurrentStatus, next))
	}

	if _, err := s.history.Append(ctx, taskID, next, actorID, note, photoRef); err != nil {
		log.WithFields(log.Fields{"task": taskID, "status": next}).Errorf("history append failed: %v", err)
	}

	task, err = s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ev := events.Event{
		Kind:    events.KindTaskStatusChanged,
		TaskID:  taskID,
		ActorID: actorID,
		Status:  string(next),
		At:      time.Now().UTC(),
	}
	s.bus.Publish(events.TaskTopic, ev)
	if room, err := s.chat.RoomForTask(ctx, taskID); err == nil {
		ev.RoomID = room.ID
		s.bus.Publish(events.RoomTopic(room.ID), ev)
	}

	return task, nil
}

func (s *TaskService) GetStatusHistory(ctx context.Context, taskID string) ([]model.StatusHistoryEntry, error) {
	if _, err := s.getTask(ctx, taskID); err != nil {
		return nil, err
	}
	return retryTransient(ctx, func() ([]model.StatusHistoryEntry, error) {
		return s.history.ListForTask(ctx, taskID)
	})
}
