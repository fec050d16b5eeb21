package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/immxrtalbeast/taskroom/lib/logger/sl"
)

// RoomService is the room registry: the durable catalog of rooms plus the
// best-effort presence view. Presence is a hint for the lobby, never an
// authorization input.
type RoomService struct {
	rooms       repository.RoomRepository
	tasks       repository.SharedTaskRepository
	chat        ChatInteractor
	broadcaster Broadcaster
	log         *slog.Logger
}

func NewRoomService(
	rooms repository.RoomRepository,
	tasks repository.SharedTaskRepository,
	chat ChatInteractor,
	broadcaster Broadcaster,
	log *slog.Logger,
) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms:       rooms,
		tasks:       tasks,
		chat:        chat,
		broadcaster: broadcaster,
		log:         log,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, name string) (*domain.Room, error) {
	const op = "service.room.create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}

	room := domain.NewRoom(name)
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("room created", slog.String("op", op), slog.String("room", name))
	return room, nil
}

// DeleteRoom removes the room and everything scoped to it, then forces every
// subscribed connection out of the channel.
func (s *RoomService) DeleteRoom(ctx context.Context, name string) error {
	const op = "service.room.delete"

	if err := s.rooms.DeleteCascade(ctx, name); err != nil {
		return err
	}

	s.log.Info("room deleted", slog.String("op", op), slog.String("room", name))

	s.broadcaster.Broadcast(name, domain.Event{
		Name:    domain.EventRoomDeleted,
		Payload: name,
	})
	s.broadcaster.CloseRoom(name)

	s.publishRoomList(ctx)
	return nil
}

func (s *RoomService) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.tasks.CountsByRoom(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, domain.RoomSummary{
			Name:      room.Name,
			UserCount: len(room.Users),
			TaskCount: counts[room.Name],
			CreatedAt: room.CreatedAt,
		})
	}
	return summaries, nil
}

// Join subscribes the connection to the room channel, records presence
// best-effort, announces the arrival, and hydrates the joiner with the
// room's current task list.
func (s *RoomService) Join(ctx context.Context, client *domain.Client, name string) error {
	const op = "service.room.join"
	log := s.log.With(slog.String("op", op), slog.String("room", name), slog.String("client", client.ID))

	room, err := s.rooms.GetByName(ctx, name)
	if err != nil {
		return err
	}

	s.broadcaster.Subscribe(client, name)

	room.Users = append(room.Users, client.ID)
	if err := s.rooms.UpdateUsers(ctx, name, room.Users); err != nil {
		log.Warn("failed to record presence", sl.Err(err))
	}

	if err := s.chat.PostSystem(ctx, name, fmt.Sprintf("%s has joined the room.", client.Username), false); err != nil {
		log.Warn("failed to post join notice", sl.Err(err))
	}

	tasks, err := s.tasks.ListByRoom(ctx, name)
	if err != nil {
		log.Error("failed to load task list for joiner", sl.Err(err))
		return nil
	}
	s.broadcaster.Unicast(client.ID, domain.Event{
		Name:    domain.EventTaskUpdate,
		Payload: domain.TasksToPayload(tasks),
	})

	log.Info("client joined room", slog.String("user", client.Username))
	return nil
}

func (s *RoomService) Leave(ctx context.Context, client *domain.Client, name string) error {
	const op = "service.room.leave"
	log := s.log.With(slog.String("op", op), slog.String("room", name), slog.String("client", client.ID))

	s.broadcaster.Unsubscribe(client.ID, name)
	s.removePresence(ctx, log, client.ID, name)

	if err := s.chat.PostSystem(ctx, name, fmt.Sprintf("%s has left the room.", client.Username), true); err != nil {
		log.Warn("failed to post leave notice", sl.Err(err))
	}

	s.publishRoomList(ctx)
	return nil
}

// Disconnect synthesizes a leave for every room the connection was joined
// to, then drops the connection from the hub. Called when a socket dies
// without a clean leave.
func (s *RoomService) Disconnect(ctx context.Context, client *domain.Client) {
	const op = "service.room.disconnect"
	log := s.log.With(slog.String("op", op), slog.String("client", client.ID))

	for _, name := range s.broadcaster.Rooms(client.ID) {
		if err := s.Leave(ctx, client, name); err != nil {
			log.Warn("failed to leave room on disconnect", slog.String("room", name), sl.Err(err))
		}
	}

	s.broadcaster.Unregister(client.ID)
	log.Info("client disconnected")
}

func (s *RoomService) removePresence(ctx context.Context, log *slog.Logger, clientID, name string) {
	room, err := s.rooms.GetByName(ctx, name)
	if err != nil {
		// the room may already be gone; presence is best-effort
		return
	}

	users := room.Users[:0]
	for _, id := range room.Users {
		if id != clientID {
			users = append(users, id)
		}
	}
	if err := s.rooms.UpdateUsers(ctx, name, users); err != nil {
		log.Warn("failed to clear presence", sl.Err(err))
	}
}

func (s *RoomService) publishRoomList(ctx context.Context) {
	summaries, err := s.ListRooms(ctx)
	if err != nil {
		s.log.Error("failed to build room list broadcast", sl.Err(err))
		return
	}

	s.broadcaster.BroadcastAll(domain.Event{
		Name:    domain.EventRoomListUpdate,
		Payload: summaries,
	})
}
