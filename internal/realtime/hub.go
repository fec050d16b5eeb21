package realtime

import (
	"log/slog"
	"sync"

	"github.com/immxrtalbeast/taskroom/internal/domain"
)

// Hub owns the ephemeral view of the realtime layer: which connections exist
// and which room channels each one is subscribed to. Delivery is
// fire-and-forget: events are pushed onto per-client buffered channels and
// dropped when a client's buffer is full, so a stalled connection never
// blocks a room. Within one room channel, events reach a client in the order
// they were published.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*domain.Client
	rooms   map[string]map[string]*domain.Client
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:     log,
		clients: make(map[string]*domain.Client),
		rooms:   make(map[string]map[string]*domain.Client),
	}
}

func (h *Hub) Register(client *domain.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister drops the connection from every room and closes its event
// channel. The rooms it was subscribed to at that moment are returned so the
// caller can synthesize leaves.
func (h *Hub) Unregister(clientID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return nil
	}

	rooms := make([]string, 0)
	for name, members := range h.rooms {
		if _, ok := members[clientID]; ok {
			rooms = append(rooms, name)
			delete(members, clientID)
			if len(members) == 0 {
				delete(h.rooms, name)
			}
		}
	}

	delete(h.clients, clientID)
	close(client.Events)
	return rooms
}

func (h *Hub) Subscribe(client *domain.Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*domain.Client)
		h.rooms[room] = members
	}
	members[client.ID] = client
}

func (h *Hub) Unsubscribe(clientID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, clientID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Rooms reports the room channels the connection is currently subscribed to.
func (h *Hub) Rooms(clientID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms := make([]string, 0)
	for name, members := range h.rooms {
		if _, ok := members[clientID]; ok {
			rooms = append(rooms, name)
		}
	}
	return rooms
}

// CloseRoom unsubscribes every connection from the room channel. Used when a
// room is deleted and its members must be forced out.
func (h *Hub) CloseRoom(room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, room)
}

// Sends happen under the read lock: they are non-blocking, and holding the
// lock means Unregister cannot close an event channel mid-send.

func (h *Hub) Broadcast(room string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[room] {
		h.deliver(client, event)
	}
}

func (h *Hub) BroadcastAll(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.deliver(client, event)
	}
}

func (h *Hub) Unicast(clientID string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[clientID]; ok {
		h.deliver(client, event)
	}
}

func (h *Hub) deliver(client *domain.Client, event domain.Event) {
	select {
	case client.Events <- event:
	default:
		h.log.Debug("dropping event", slog.String("client", client.ID), slog.String("event", event.Name))
	}
}
