package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Actor{ID: uuid.New(), Name: "alice"}
	bob   = domain.Actor{ID: uuid.New(), Name: "bob"}
	carol = domain.Actor{ID: uuid.New(), Name: "carol"}
)

func TestTaskService_Offer(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "write minutes", task.Task)
	assert.Equal(t, alice.ID, task.SenderID)
	assert.Equal(t, "alice", task.SenderName)
	assert.Nil(t, task.ReceiverID)
	assert.False(t, task.Completed)

	update, ok := f.bus.lastNamed(domain.EventTaskUpdate)
	require.True(t, ok, "offer must broadcast the task list")
	assert.Equal(t, "room", update.scope)
	assert.Equal(t, "standup", update.target)

	payload, ok := update.event.Payload.([]domain.TaskPayload)
	require.True(t, ok)
	require.Len(t, payload, 1)
	assert.Equal(t, task.ID, payload[0].ID)
}

func TestTaskService_OfferValidation(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	_, err := f.taskSvc.Offer(ctx, "standup", "   ", alice, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyTask)

	_, err = f.taskSvc.Offer(ctx, "  ", "write minutes", alice, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyRoomName)

	_, err = f.taskSvc.Offer(ctx, "nowhere", "write minutes", alice, nil, nil)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestTaskService_AcceptFirstComeFirstServed(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.taskSvc.Accept(ctx, task.ID, bob))

	stored, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReceiverID)
	assert.Equal(t, bob.ID, *stored.ReceiverID)
	assert.Equal(t, "bob", stored.ReceiverName)

	notice := f.lastMessage(t, "standup")
	assert.True(t, notice.IsSystem)
	assert.False(t, notice.IsItalic)
	assert.Equal(t, `bob has accepted the task: "write minutes".`, notice.Message)

	// second claim loses and must not steal the task
	err = f.taskSvc.Accept(ctx, task.ID, carol)
	assert.ErrorIs(t, err, repository.ErrTaskClaimed)

	stored, err = f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, *stored.ReceiverID)
}

func TestTaskService_CompleteRequiresReceiver(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	// unclaimed tasks cannot be completed at all
	assert.ErrorIs(t, f.taskSvc.Complete(ctx, task.ID, alice), ErrNotReceiver)

	require.NoError(t, f.taskSvc.Accept(ctx, task.ID, bob))
	assert.ErrorIs(t, f.taskSvc.Complete(ctx, task.ID, alice), ErrNotReceiver)

	stored, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)

	require.NoError(t, f.taskSvc.Complete(ctx, task.ID, bob))

	stored, err = f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)

	notice := f.lastMessage(t, "standup")
	assert.Equal(t, `bob has completed the task: "write minutes".`, notice.Message)
}

func TestTaskService_EditRules(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.taskSvc.Edit(ctx, task.ID, bob, "steal it", nil), ErrNotSender)
	assert.ErrorIs(t, f.taskSvc.Edit(ctx, task.ID, alice, "  ", nil), ErrEmptyTask)

	require.NoError(t, f.taskSvc.Edit(ctx, task.ID, alice, "write detailed minutes", nil))

	stored, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write detailed minutes", stored.Task)

	require.NoError(t, f.taskSvc.Accept(ctx, task.ID, bob))
	require.NoError(t, f.taskSvc.Complete(ctx, task.ID, bob))

	// completed is terminal
	assert.ErrorIs(t, f.taskSvc.Edit(ctx, task.ID, alice, "reopen", nil), ErrTaskCompleted)
}

func TestTaskService_DeclineRemovesTaskAndAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	attachment := &domain.Attachment{
		FileName:    "agenda.pdf",
		FilePath:    "/uploads/abc123.pdf",
		ContentType: "application/pdf",
	}
	task, err := f.taskSvc.Offer(ctx, "standup", "review agenda", alice, nil, attachment)
	require.NoError(t, err)

	require.NoError(t, f.taskSvc.Decline(ctx, task.ID, bob))

	_, err = f.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Contains(t, f.remover.removed, "/uploads/abc123.pdf")

	notice := f.lastMessage(t, "standup")
	assert.Equal(t, `bob has declined the task: "review agenda".`, notice.Message)

	assert.ErrorIs(t, f.taskSvc.Accept(ctx, task.ID, carol), repository.ErrTaskNotFound)
}

func TestTaskService_DeleteRequiresSender(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	require.NoError(t, f.rooms.Create(ctx, domain.NewRoom("standup")))

	task, err := f.taskSvc.Offer(ctx, "standup", "write minutes", alice, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.taskSvc.Delete(ctx, task.ID, bob), ErrNotSender)

	require.NoError(t, f.taskSvc.Delete(ctx, task.ID, alice))

	_, err = f.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}
