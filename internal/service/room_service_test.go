package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomService_CreateRoom(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	room, err := f.roomSvc.CreateRoom(ctx, "  standup  ")
	require.NoError(t, err)
	assert.Equal(t, "standup", room.Name)

	_, err = f.roomSvc.CreateRoom(ctx, "standup")
	assert.ErrorIs(t, err, repository.ErrRoomExists)

	_, err = f.roomSvc.CreateRoom(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyRoomName)
}

func TestRoomService_DeleteRoomCascades(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.roomSvc.CreateRoom(ctx, "standup")
	require.NoError(t, err)

	require.NoError(t, f.chat.Post(ctx, "standup", alice, "hello"))
	_, err = f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.roomSvc.DeleteRoom(ctx, "standup"))

	tasks, err := f.tasks.ListByRoom(ctx, "standup")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	msgs, err := f.messages.ListByRoom(ctx, "standup", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	deleted, ok := f.bus.lastNamed(domain.EventRoomDeleted)
	require.True(t, ok, "delete must notify the room channel")
	assert.Equal(t, "room", deleted.scope)
	assert.Equal(t, "standup", deleted.target)
	assert.Equal(t, "standup", deleted.event.Payload)

	assert.Contains(t, f.bus.closedRooms, "standup")

	listUpdate, ok := f.bus.lastNamed(domain.EventRoomListUpdate)
	require.True(t, ok, "delete must refresh the lobby")
	assert.Equal(t, "all", listUpdate.scope)

	assert.ErrorIs(t, f.roomSvc.DeleteRoom(ctx, "standup"), repository.ErrRoomNotFound)
}

func TestRoomService_ListRooms(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.roomSvc.CreateRoom(ctx, "standup")
	require.NoError(t, err)
	_, err = f.roomSvc.CreateRoom(ctx, "retro")
	require.NoError(t, err)

	_, err = f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)
	_, err = f.taskSvc.Offer(ctx, "standup", "book a room", bob, nil, nil)
	require.NoError(t, err)

	summaries, err := f.roomSvc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byName := make(map[string]domain.RoomSummary)
	for _, s := range summaries {
		byName[s.Name] = s
	}
	assert.EqualValues(t, 2, byName["standup"].TaskCount)
	assert.EqualValues(t, 0, byName["retro"].TaskCount)
}

func TestRoomService_JoinAnnouncesAndHydrates(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.roomSvc.CreateRoom(ctx, "standup")
	require.NoError(t, err)
	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	client := domain.NewClient(bob.ID, "bob")
	require.NoError(t, f.roomSvc.Join(ctx, client, "standup"))

	assert.Contains(t, f.bus.Rooms(client.ID), "standup")

	room, err := f.rooms.GetByName(ctx, "standup")
	require.NoError(t, err)
	assert.Contains(t, room.Users, client.ID)

	notice := f.lastMessage(t, "standup")
	assert.True(t, notice.IsSystem)
	assert.False(t, notice.IsItalic)
	assert.Equal(t, "bob has joined the room.", notice.Message)

	// the joiner is hydrated with the current task list
	hydrate, ok := f.bus.lastNamed(domain.EventTaskUpdate)
	require.True(t, ok)
	assert.Equal(t, "client", hydrate.scope)
	assert.Equal(t, client.ID, hydrate.target)

	payload, ok := hydrate.event.Payload.([]domain.TaskPayload)
	require.True(t, ok)
	require.Len(t, payload, 1)
	assert.Equal(t, task.ID, payload[0].ID)
}

func TestRoomService_JoinUnknownRoom(t *testing.T) {
	f := newFixture(t)

	client := domain.NewClient(bob.ID, "bob")
	err := f.roomSvc.Join(t.Context(), client, "nowhere")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	assert.Empty(t, f.bus.Rooms(client.ID))
}

func TestRoomService_LeavePostsItalicNotice(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.roomSvc.CreateRoom(ctx, "standup")
	require.NoError(t, err)

	client := domain.NewClient(bob.ID, "bob")
	require.NoError(t, f.roomSvc.Join(ctx, client, "standup"))
	require.NoError(t, f.roomSvc.Leave(ctx, client, "standup"))

	assert.Empty(t, f.bus.Rooms(client.ID))

	room, err := f.rooms.GetByName(ctx, "standup")
	require.NoError(t, err)
	assert.NotContains(t, room.Users, client.ID)

	notice := f.lastMessage(t, "standup")
	assert.True(t, notice.IsSystem)
	assert.True(t, notice.IsItalic)
	assert.Equal(t, "bob has left the room.", notice.Message)

	listUpdate, ok := f.bus.lastNamed(domain.EventRoomListUpdate)
	require.True(t, ok, "leave must refresh the lobby")
	assert.Equal(t, "all", listUpdate.scope)
}

func TestRoomService_DisconnectLeavesEveryRoom(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	for _, name := range []string{"standup", "retro"} {
		_, err := f.roomSvc.CreateRoom(ctx, name)
		require.NoError(t, err)
	}

	client := domain.NewClient(uuid.New(), "carol")
	require.NoError(t, f.roomSvc.Join(ctx, client, "standup"))
	require.NoError(t, f.roomSvc.Join(ctx, client, "retro"))

	f.roomSvc.Disconnect(ctx, client)

	assert.Empty(t, f.bus.Rooms(client.ID))
	assert.Contains(t, f.bus.unregistered, client.ID)

	for _, name := range []string{"standup", "retro"} {
		notice := f.lastMessage(t, name)
		assert.Equal(t, "carol has left the room.", notice.Message, "room %s", name)
		assert.True(t, notice.IsItalic)
	}
}
