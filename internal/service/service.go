package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
)

// Broadcaster is the dispatch contract binding connections to room channels.
// Implemented by realtime.Hub; tests substitute a fake.
type Broadcaster interface {
	Register(client *domain.Client)
	Unregister(clientID string) []string
	Subscribe(client *domain.Client, room string)
	Unsubscribe(clientID, room string)
	Rooms(clientID string) []string
	CloseRoom(room string)
	Broadcast(room string, event domain.Event)
	BroadcastAll(event domain.Event)
	Unicast(clientID string, event domain.Event)
}

// AttachmentRemover deletes a stored attachment by its public path.
type AttachmentRemover interface {
	Remove(filePath string) error
}

type RoomInteractor interface {
	CreateRoom(ctx context.Context, name string) (*domain.Room, error)
	DeleteRoom(ctx context.Context, name string) error
	ListRooms(ctx context.Context) ([]domain.RoomSummary, error)
	Join(ctx context.Context, client *domain.Client, name string) error
	Leave(ctx context.Context, client *domain.Client, name string) error
	Disconnect(ctx context.Context, client *domain.Client)
}

type TaskInteractor interface {
	Offer(ctx context.Context, roomName, text string, sender domain.Actor, deadline *time.Time, attachment *domain.Attachment) (*domain.SharedTask, error)
	Edit(ctx context.Context, id uuid.UUID, actor domain.Actor, text string, deadline *time.Time) error
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	Accept(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	Decline(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	Complete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	RoomTaskList(ctx context.Context, roomName string) ([]domain.TaskPayload, error)
}

type ChatInteractor interface {
	Post(ctx context.Context, room string, author domain.Actor, text string) error
	PostSystem(ctx context.Context, room, text string, italic bool) error
	History(ctx context.Context, room string, page, limit int) ([]domain.MessagePayload, error)
}

type UserInteractor interface {
	CreateUser(ctx context.Context, name, username string) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
