package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByName(ctx context.Context, name string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	UpdateUsers(ctx context.Context, name string, users []string) error
	// DeleteCascade removes the room together with every message and shared
	// task scoped to its name, atomically where the backend allows it.
	DeleteCascade(ctx context.Context, name string) error
}

type SharedTaskRepository interface {
	Create(ctx context.Context, task *domain.SharedTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SharedTask, error)
	Update(ctx context.Context, task *domain.SharedTask) error
	// Claim sets the receiver only if the task is still unclaimed. A claimed
	// task yields ErrTaskClaimed so concurrent acceptors are detected.
	Claim(ctx context.Context, id uuid.UUID, receiver domain.Actor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRoom(ctx context.Context, roomName string) ([]*domain.SharedTask, error)
	CountsByRoom(ctx context.Context) (map[string]int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListByRoom returns messages newest-first for efficient pagination;
	// callers reverse the page before handing it out.
	ListByRoom(ctx context.Context, roomName string, offset, limit int) ([]*domain.Message, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
