package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sentEvent records one delivery made through the fake broadcaster.
// scope is "room", "all" or "client"; target is the room name or client id.
type sentEvent struct {
	scope  string
	target string
	event  domain.Event
}

type fakeBroadcaster struct {
	mu           sync.Mutex
	subs         map[string][]string
	sent         []sentEvent
	closedRooms  []string
	unregistered []string
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{subs: make(map[string][]string)}
}

func (f *fakeBroadcaster) Register(client *domain.Client) {}

func (f *fakeBroadcaster) Unregister(clientID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rooms := f.subs[clientID]
	delete(f.subs, clientID)
	f.unregistered = append(f.unregistered, clientID)
	return rooms
}

func (f *fakeBroadcaster) Subscribe(client *domain.Client, room string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[client.ID] = append(f.subs[client.ID], room)
}

func (f *fakeBroadcaster) Unsubscribe(clientID, room string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.subs[clientID][:0]
	for _, name := range f.subs[clientID] {
		if name != room {
			kept = append(kept, name)
		}
	}
	f.subs[clientID] = kept
}

func (f *fakeBroadcaster) Rooms(clientID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.subs[clientID]...)
}

func (f *fakeBroadcaster) CloseRoom(room string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closedRooms = append(f.closedRooms, room)
}

func (f *fakeBroadcaster) Broadcast(room string, event domain.Event) {
	f.record(sentEvent{scope: "room", target: room, event: event})
}

func (f *fakeBroadcaster) BroadcastAll(event domain.Event) {
	f.record(sentEvent{scope: "all", event: event})
}

func (f *fakeBroadcaster) Unicast(clientID string, event domain.Event) {
	f.record(sentEvent{scope: "client", target: clientID, event: event})
}

func (f *fakeBroadcaster) record(e sentEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
}

func (f *fakeBroadcaster) named(name string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEvent
	for _, e := range f.sent {
		if e.event.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeBroadcaster) lastNamed(name string) (sentEvent, bool) {
	events := f.named(name)
	if len(events) == 0 {
		return sentEvent{}, false
	}
	return events[len(events)-1], true
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
}

func (f *fakeRemover) Remove(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, filePath)
	return nil
}

type fixture struct {
	rooms    *repository.InMemoryRoomRepository
	tasks    *repository.InMemorySharedTaskRepository
	messages *repository.InMemoryMessageRepository
	bus      *fakeBroadcaster
	remover  *fakeRemover
	chat     *ChatService
	taskSvc  *TaskService
	roomSvc  *RoomService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tasks := repository.NewInMemorySharedTaskRepository()
	messages := repository.NewInMemoryMessageRepository()
	rooms := repository.NewInMemoryRoomRepository(tasks, messages)
	bus := newFakeBroadcaster()
	remover := &fakeRemover{}
	log := discardLogger()

	chat := NewChatService(messages, bus, log, 20)
	taskSvc := NewTaskService(tasks, rooms, chat, bus, remover, log)
	roomSvc := NewRoomService(rooms, tasks, chat, bus, log)

	return &fixture{
		rooms:    rooms,
		tasks:    tasks,
		messages: messages,
		bus:      bus,
		remover:  remover,
		chat:     chat,
		taskSvc:  taskSvc,
		roomSvc:  roomSvc,
	}
}

// lastMessage returns the most recent message stored for the room.
func (f *fixture) lastMessage(t *testing.T, room string) *domain.Message {
	t.Helper()

	msgs, err := f.messages.ListByRoom(t.Context(), room, 0, 1)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatalf("no messages stored for room %s", room)
	}
	return msgs[0]
}
