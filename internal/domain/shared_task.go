package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment describes a single uploaded file bound to a shared task.
type Attachment struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	ContentType string `json:"content_type"`
}

// SharedTask is an offer of work posted to a room. It starts unclaimed
// (ReceiverID nil), may be claimed by exactly one receiver, and is completed
// only by the current receiver. Sender and receiver display names are
// denormalized onto the record so every task-list broadcast carries them
// without extra lookups.
type SharedTask struct {
	ID           uuid.UUID
	Task         string
	RoomName     string
	SenderID     uuid.UUID
	SenderName   string
	ReceiverID   *uuid.UUID
	ReceiverName string
	Deadline     *time.Time
	Attachment   *Attachment
	Completed    bool
	CreatedAt    time.Time
}

func NewSharedTask(roomName, task string, sender Actor, deadline *time.Time, attachment *Attachment) *SharedTask {
	return &SharedTask{
		ID:         uuid.New(),
		Task:       task,
		RoomName:   roomName,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Deadline:   deadline,
		Attachment: attachment,
		CreatedAt:  time.Now().UTC(),
	}
}

// Claimed reports whether a receiver has accepted the task.
func (t *SharedTask) Claimed() bool {
	return t.ReceiverID != nil
}
