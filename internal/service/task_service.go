package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/immxrtalbeast/taskroom/lib/logger/sl"
)

var (
	ErrEmptyTask     = errors.New("task text is required")
	ErrEmptyRoomName = errors.New("room name is required")
	ErrNotSender     = errors.New("only the sender may modify this task")
	ErrNotReceiver   = errors.New("only the receiver may complete this task")
	ErrTaskCompleted = errors.New("task is already completed")
)

// TaskService is the shared-task ledger: the offer/accept/decline/complete
// state machine for one room's tasks. Every mutation rebroadcasts the room's
// entire task list; consumers treat each broadcast as a full-state
// replacement.
type TaskService struct {
	tasks       repository.SharedTaskRepository
	rooms       repository.RoomRepository
	chat        ChatInteractor
	broadcaster Broadcaster
	attachments AttachmentRemover
	log         *slog.Logger
}

func NewTaskService(
	tasks repository.SharedTaskRepository,
	rooms repository.RoomRepository,
	chat ChatInteractor,
	broadcaster Broadcaster,
	attachments AttachmentRemover,
	log *slog.Logger,
) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		tasks:       tasks,
		rooms:       rooms,
		chat:        chat,
		broadcaster: broadcaster,
		attachments: attachments,
		log:         log,
	}
}

func (s *TaskService) Offer(ctx context.Context, roomName, text string, sender domain.Actor, deadline *time.Time, attachment *domain.Attachment) (*domain.SharedTask, error) {
	const op = "service.task.offer"
	log := s.log.With(slog.String("op", op), slog.String("room", roomName))

	text = strings.TrimSpace(text)
	roomName = strings.TrimSpace(roomName)
	if text == "" {
		return nil, ErrEmptyTask
	}
	if roomName == "" {
		return nil, ErrEmptyRoomName
	}

	if _, err := s.rooms.GetByName(ctx, roomName); err != nil {
		return nil, err
	}

	task := domain.NewSharedTask(roomName, text, sender, deadline, attachment)
	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create shared task", sl.Err(err))
		return nil, err
	}

	log.Info("task offered", slog.String("task_id", task.ID.String()), slog.String("sender", sender.Name))
	s.publishTaskList(ctx, roomName)
	return task, nil
}

func (s *TaskService) Edit(ctx context.Context, id uuid.UUID, actor domain.Actor, text string, deadline *time.Time) error {
	const op = "service.task.edit"

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTask
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.SenderID != actor.ID {
		return ErrNotSender
	}
	if task.Completed {
		return ErrTaskCompleted
	}

	task.Task = text
	task.Deadline = deadline
	if err := s.tasks.Update(ctx, task); err != nil {
		s.log.Error("failed to update shared task", slog.String("op", op), sl.Err(err))
		return err
	}

	s.publishTaskList(ctx, task.RoomName)
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	const op = "service.task.delete"

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.SenderID != actor.ID {
		return ErrNotSender
	}

	s.removeAttachment(op, task)

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.publishTaskList(ctx, task.RoomName)
	return nil
}

// Accept claims the task for the actor. The claim is a compare-and-swap on
// the receiver: if someone got there first the caller sees ErrTaskClaimed
// instead of silently stealing the task.
func (s *TaskService) Accept(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	const op = "service.task.accept"

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Claim(ctx, id, actor); err != nil {
		return err
	}

	s.log.Info("task accepted",
		slog.String("op", op),
		slog.String("task_id", id.String()),
		slog.String("receiver", actor.Name),
	)

	s.publishTaskList(ctx, task.RoomName)
	s.notify(ctx, task.RoomName, fmt.Sprintf("%s has accepted the task: %q.", actor.Name, task.Task))
	return nil
}

// Decline removes the task outright, whether it was claimed or not. Any room
// member may decline; no tombstone is kept.
func (s *TaskService) Decline(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	const op = "service.task.decline"

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.removeAttachment(op, task)

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.publishTaskList(ctx, task.RoomName)
	s.notify(ctx, task.RoomName, fmt.Sprintf("%s has declined the task: %q.", actor.Name, task.Task))
	return nil
}

func (s *TaskService) Complete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	const op = "service.task.complete"

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.ReceiverID == nil || *task.ReceiverID != actor.ID {
		return ErrNotReceiver
	}

	task.Completed = true
	if err := s.tasks.Update(ctx, task); err != nil {
		s.log.Error("failed to complete shared task", slog.String("op", op), sl.Err(err))
		return err
	}

	s.publishTaskList(ctx, task.RoomName)
	s.notify(ctx, task.RoomName, fmt.Sprintf("%s has completed the task: %q.", actor.Name, task.Task))
	return nil
}

// RoomTaskList returns the room's full task list with sender and receiver
// names expanded, in creation order.
func (s *TaskService) RoomTaskList(ctx context.Context, roomName string) ([]domain.TaskPayload, error) {
	tasks, err := s.tasks.ListByRoom(ctx, roomName)
	if err != nil {
		return nil, err
	}
	return domain.TasksToPayload(tasks), nil
}

// publishTaskList is the single place a task-list change reaches the room
// channel; swapping full-state broadcasts for deltas later only touches this.
func (s *TaskService) publishTaskList(ctx context.Context, roomName string) {
	payload, err := s.RoomTaskList(ctx, roomName)
	if err != nil {
		s.log.Error("failed to load task list for broadcast", slog.String("room", roomName), sl.Err(err))
		return
	}

	s.broadcaster.Broadcast(roomName, domain.Event{
		Name:    domain.EventTaskUpdate,
		Payload: payload,
	})
}

func (s *TaskService) notify(ctx context.Context, roomName, text string) {
	if err := s.chat.PostSystem(ctx, roomName, text, false); err != nil {
		s.log.Error("failed to post system notice", slog.String("room", roomName), sl.Err(err))
	}
}

func (s *TaskService) removeAttachment(op string, task *domain.SharedTask) {
	if task.Attachment == nil || s.attachments == nil {
		return
	}
	if err := s.attachments.Remove(task.Attachment.FilePath); err != nil {
		s.log.Warn("failed to remove attachment",
			slog.String("op", op),
			slog.String("path", task.Attachment.FilePath),
			sl.Err(err),
		)
	}
}
