package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/events"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

const DefaultMessageMaxLen = 2000

// ChatService provisions the per-task room and owns the message log
// and read receipts.
type ChatService struct {
	rooms    ChatStore
	messages MessageStore
	tasks    TaskStore
	bus      *events.Bus
	maxLen   int
}

func NewChatService(rooms ChatStore, messages MessageStore, tasks TaskStore, bus *events.Bus, maxMessageLen int) *ChatService {
	if maxMessageLen <= 0 {
		maxMessageLen = DefaultMessageMaxLen
	}
	return &ChatService{
		rooms:    rooms,
		messages: messages,
		tasks:    tasks,
		bus:      bus,
		maxLen:   maxMessageLen,
	}
}

// EnsureRoomForTask returns the task's room, creating it on first use.
// The fast path is a read; creation itself relies on the task_id
// uniqueness constraint, so two concurrent callers racing past the
// read still produce exactly one room.
func (s *ChatService) EnsureRoomForTask(ctx context.Context, taskID string) (*model.ChatRoom, error) {
	room, err := s.rooms.FindRoomByTask(ctx, taskID)
	if err == nil {
		return room, nil
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	task, err := retryTransient(ctx, func() (*model.Task, error) {
		return s.tasks.FindByID(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}
	if task.AcceptedBy == nil {
		return nil, apperrors.InvalidTransition("task has no claimant yet")
	}

	room, err = s.rooms.CreateRoom(ctx, taskID, []string{task.CreatedBy, *task.AcceptedBy})
	if err != nil {
		if errors.Is(err, repository.ErrRoomExists) {
			return s.rooms.FindRoomByTask(ctx, taskID)
		}
		return nil, err
	}

	return room, nil
}

func (s *ChatService) RoomForTask(ctx context.Context, taskID string) (*model.ChatRoom, error) {
	return s.rooms.FindRoomByTask(ctx, taskID)
}

func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID, text string) (*model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("message text is required")
	}
	if utf8.RuneCountInString(text) > s.maxLen {
		return nil, apperrors.Validation("message text is too long")
	}

	if _, err := s.rooms.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	if _, err := s.rooms.FindMembership(ctx, roomID, senderID); err != nil {
		return nil, err
	}

	msg, err := s.messages.Append(ctx, roomID, senderID, text)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.SetLastMessage(ctx, roomID, msg.Text, msg.CreatedAt); err != nil {
		// inbox preview only; the message itself is durable
		log.WithFields(log.Fields{"room": roomID}).Errorf("last message update failed: %v", err)
	}

	s.bus.Publish(events.RoomTopic(roomID), events.Event{
		Kind:    events.KindNewMessage,
		RoomID:  roomID,
		ActorID: senderID,
		Message: msg,
		At:      msg.CreatedAt,
	})

	return msg, nil
}

// ListMessages is the history re-fetch path for subscribers that
// disconnected and cannot assume gap-free delivery resumed.
func (s *ChatService) ListMessages(ctx context.Context, roomID, userID string, limit, offset int) ([]model.ChatMessage, error) {
	if _, err := s.rooms.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	if _, err := s.rooms.FindMembership(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	return retryTransient(ctx, func() ([]model.ChatMessage, error) {
		return s.messages.ListForRoom(ctx, roomID, limit, offset)
	})
}

func (s *ChatService) MarkRead(ctx context.Context, roomID, userID string) error {
	if _, err := s.rooms.FindRoomByID(ctx, roomID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.rooms.SetLastRead(ctx, roomID, userID, now); err != nil {
		return err
	}

	s.bus.Publish(events.RoomTopic(roomID), events.Event{
		Kind:    events.KindReadReceipt,
		RoomID:  roomID,
		ActorID: userID,
		At:      now,
	})

	return nil
}

// Memberships returns both members of a room, caller included; it
// backs the "seen" computation against the other member's last read.
func (s *ChatService) Memberships(ctx context.Context, roomID, userID string) ([]model.ChatMembership, error) {
	if _, err := s.rooms.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	if _, err := s.rooms.FindMembership(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.rooms.ListMemberships(ctx, roomID)
}
