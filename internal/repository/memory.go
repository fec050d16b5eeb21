package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
)

// In-memory implementations backing tests and the storage-less local setup.
// They return copies so callers never alias repository state.

type InMemoryRoomRepository struct {
	mu       sync.RWMutex
	rooms    map[string]*domain.Room
	tasks    *InMemorySharedTaskRepository
	messages *InMemoryMessageRepository
}

func NewInMemoryRoomRepository(tasks *InMemorySharedTaskRepository, messages *InMemoryMessageRepository) *InMemoryRoomRepository {
	return &InMemoryRoomRepository{
		rooms:    make(map[string]*domain.Room),
		tasks:    tasks,
		messages: messages,
	}
}

func (r *InMemoryRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.Name]; ok {
		return ErrRoomExists
	}

	cp := *room
	cp.Users = append([]string{}, room.Users...)
	r.rooms[room.Name] = &cp
	return nil
}

func (r *InMemoryRoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}

	cp := *room
	cp.Users = append([]string{}, room.Users...)
	return &cp, nil
}

func (r *InMemoryRoomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		cp := *room
		cp.Users = append([]string{}, room.Users...)
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryRoomRepository) UpdateUsers(ctx context.Context, name string, users []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok {
		return ErrRoomNotFound
	}

	room.Users = append([]string{}, users...)
	return nil
}

func (r *InMemoryRoomRepository) DeleteCascade(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[name]; !ok {
		return ErrRoomNotFound
	}

	delete(r.rooms, name)
	if r.tasks != nil {
		r.tasks.deleteByRoom(name)
	}
	if r.messages != nil {
		r.messages.deleteByRoom(name)
	}
	return nil
}

type InMemorySharedTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.SharedTask
}

func NewInMemorySharedTaskRepository() *InMemorySharedTaskRepository {
	return &InMemorySharedTaskRepository{
		tasks: make(map[uuid.UUID]*domain.SharedTask),
	}
}

func (r *InMemorySharedTaskRepository) Create(ctx context.Context, task *domain.SharedTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *InMemorySharedTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SharedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	cp := *task
	return &cp, nil
}

func (r *InMemorySharedTaskRepository) Update(ctx context.Context, task *domain.SharedTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}

	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *InMemorySharedTaskRepository) Claim(ctx context.Context, id uuid.UUID, receiver domain.Actor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if task.ReceiverID != nil {
		return ErrTaskClaimed
	}

	receiverID := receiver.ID
	task.ReceiverID = &receiverID
	task.ReceiverName = receiver.Name
	return nil
}

func (r *InMemorySharedTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}

	delete(r.tasks, id)
	return nil
}

func (r *InMemorySharedTaskRepository) ListByRoom(ctx context.Context, roomName string) ([]*domain.SharedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.SharedTask, 0)
	for _, task := range r.tasks {
		if task.RoomName != roomName {
			continue
		}
		cp := *task
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemorySharedTaskRepository) CountsByRoom(ctx context.Context) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, task := range r.tasks {
		counts[task.RoomName]++
	}
	return counts, nil
}

func (r *InMemorySharedTaskRepository) deleteByRoom(roomName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, task := range r.tasks {
		if task.RoomName == roomName {
			delete(r.tasks, id)
		}
	}
}

type InMemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{}
}

func (r *InMemoryMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *InMemoryMessageRepository) ListByRoom(ctx context.Context, roomName string, offset, limit int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	scoped := make([]*domain.Message, 0)
	for _, msg := range r.messages {
		if msg.RoomName == roomName {
			scoped = append(scoped, msg)
		}
	}
	// newest first, insertion order breaks timestamp ties
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].CreatedAt.After(scoped[j].CreatedAt)
	})

	if offset >= len(scoped) {
		return []*domain.Message{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(scoped) {
		end = len(scoped)
	}

	result := make([]*domain.Message, 0, end-offset)
	for _, msg := range scoped[offset:end] {
		cp := *msg
		result = append(result, &cp)
	}
	return result, nil
}

func (r *InMemoryMessageRepository) deleteByRoom(roomName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.messages[:0]
	for _, msg := range r.messages {
		if msg.RoomName != roomName {
			kept = append(kept, msg)
		}
	}
	r.messages = kept
}

type InMemoryUserRepository struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*domain.User
	usernames map[string]uuid.UUID
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:     make(map[uuid.UUID]*domain.User),
		usernames: make(map[string]uuid.UUID),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.usernames[user.Username]; ok {
		return ErrUsernameExists
	}

	cp := *user
	r.users[user.ID] = &cp
	r.usernames[user.Username] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}
