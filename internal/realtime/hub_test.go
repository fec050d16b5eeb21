package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(name string) *domain.Client {
	return domain.NewClient(uuid.New(), name)
}

func receive(t *testing.T, client *domain.Client) domain.Event {
	t.Helper()
	select {
	case event := <-client.Events:
		return event
	default:
		t.Fatalf("client %s has no pending event", client.Username)
		return domain.Event{}
	}
}

func TestHub_BroadcastReachesRoomMembers(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	b := newTestClient("b")
	outsider := newTestClient("outsider")
	for _, c := range []*domain.Client{a, b, outsider} {
		hub.Register(c)
	}
	hub.Subscribe(a, "standup")
	hub.Subscribe(b, "standup")

	hub.Broadcast("standup", domain.Event{Name: "task update"})

	assert.Equal(t, "task update", receive(t, a).Name)
	assert.Equal(t, "task update", receive(t, b).Name)
	assert.Empty(t, outsider.Events)
}

func TestHub_UnicastReachesOnlyTarget(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	b := newTestClient("b")
	hub.Register(a)
	hub.Register(b)

	hub.Unicast(a.ID, domain.Event{Name: "chat history"})

	assert.Equal(t, "chat history", receive(t, a).Name)
	assert.Empty(t, b.Events)

	// unknown targets are ignored
	hub.Unicast("nope", domain.Event{Name: "chat history"})
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	b := newTestClient("b")
	hub.Register(a)
	hub.Register(b)
	hub.Subscribe(a, "standup")

	hub.Broadcast("standup", domain.Event{Name: "task update"})
	hub.BroadcastAll(domain.Event{Name: "room list update"})

	assert.Equal(t, "task update", receive(t, a).Name)
	assert.Equal(t, "room list update", receive(t, a).Name)
	assert.Equal(t, "room list update", receive(t, b).Name)
}

func TestHub_UnregisterReturnsRoomsAndClosesChannel(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	hub.Register(a)
	hub.Subscribe(a, "standup")
	hub.Subscribe(a, "retro")

	rooms := hub.Unregister(a.ID)
	assert.ElementsMatch(t, []string{"standup", "retro"}, rooms)

	_, open := <-a.Events
	assert.False(t, open, "event channel must be closed")

	assert.Empty(t, hub.Rooms(a.ID))
	assert.Nil(t, hub.Unregister(a.ID))

	// sends to a gone client are no-ops
	hub.Broadcast("standup", domain.Event{Name: "task update"})
	hub.Unicast(a.ID, domain.Event{Name: "task update"})
}

func TestHub_CloseRoomDropsAllSubscriptions(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	b := newTestClient("b")
	hub.Register(a)
	hub.Register(b)
	hub.Subscribe(a, "standup")
	hub.Subscribe(b, "standup")

	hub.CloseRoom("standup")

	hub.Broadcast("standup", domain.Event{Name: "task update"})
	assert.Empty(t, a.Events)
	assert.Empty(t, b.Events)
	assert.Empty(t, hub.Rooms(a.ID))
}

func TestHub_DropsEventsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	hub.Register(a)
	hub.Subscribe(a, "standup")

	// nobody drains the channel; overflow must drop, not block
	for i := 0; i < 2*cap(a.Events); i++ {
		hub.Broadcast("standup", domain.Event{Name: "task update"})
	}

	assert.Len(t, a.Events, cap(a.Events))

	require.Equal(t, "task update", receive(t, a).Name)
	hub.Broadcast("standup", domain.Event{Name: "chat message"})
	assert.Len(t, a.Events, cap(a.Events))
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(nil)

	a := newTestClient("a")
	hub.Register(a)
	hub.Subscribe(a, "standup")
	hub.Unsubscribe(a.ID, "standup")

	hub.Broadcast("standup", domain.Event{Name: "task update"})
	assert.Empty(t, a.Events)

	// a unicast still works, the client itself is registered
	hub.Unicast(a.ID, domain.Event{Name: "chat history"})
	assert.Equal(t, "chat history", receive(t, a).Name)
}
