package domain

import (
	"time"

	"github.com/google/uuid"
)

// Realtime event names. The chat message name is used in both directions.
const (
	// client -> server
	EventRequestRoomList    = "request room list"
	EventJoinRoom           = "joinRoom"
	EventLeaveRoom          = "leave room"
	EventRequestChatHistory = "request chat history"

	// server -> client
	EventRoomListUpdate = "room list update"
	EventRoomDeleted    = "room deleted"
	EventTaskUpdate     = "task update"
	EventChatMessage    = "chat message"
	EventChatHistory    = "chat history"
	EventError          = "error"
)

// Event is a single realtime frame. Inbound payloads are decoded into the
// typed structs below at the channel boundary; outbound payloads are whatever
// the emitting service attaches.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// RoomRef selects a room on join/leave requests.
type RoomRef struct {
	Room string `json:"room"`
}

// HistoryRequest asks for one page of chat history. Page is zero-based;
// Limit <= 0 falls back to the server's configured page size.
type HistoryRequest struct {
	Room  string `json:"room"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// ChatRequest is an inbound user chat message. Identity comes from the
// connection, not from the frame.
type ChatRequest struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

// MessagePayload is the wire form of a chat message, user or system.
type MessagePayload struct {
	Room      string     `json:"room"`
	Username  string     `json:"username"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Message   string     `json:"message"`
	IsSystem  bool       `json:"isSystem"`
	IsItalic  bool       `json:"isItalic,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func MessageToPayload(m *Message) MessagePayload {
	return MessagePayload{
		Room:      m.RoomName,
		Username:  m.Username,
		UserID:    m.UserID,
		Message:   m.Message,
		IsSystem:  m.IsSystem,
		IsItalic:  m.IsItalic,
		CreatedAt: m.CreatedAt,
	}
}

// TaskPayload is one entry of a task-list broadcast, sender and receiver
// expanded to display names. Consumers treat each list as a full-state
// replacement, never a patch.
type TaskPayload struct {
	ID           uuid.UUID   `json:"id"`
	Task         string      `json:"task"`
	RoomName     string      `json:"room_name"`
	SenderID     uuid.UUID   `json:"sender_id"`
	SenderName   string      `json:"sender_name"`
	ReceiverID   *uuid.UUID  `json:"receiver_id,omitempty"`
	ReceiverName string      `json:"receiver_name,omitempty"`
	Deadline     *time.Time  `json:"deadline,omitempty"`
	Attachment   *Attachment `json:"attachment,omitempty"`
	Completed    bool        `json:"completed"`
	CreatedAt    time.Time   `json:"created_at"`
}

func TaskToPayload(t *SharedTask) TaskPayload {
	return TaskPayload{
		ID:           t.ID,
		Task:         t.Task,
		RoomName:     t.RoomName,
		SenderID:     t.SenderID,
		SenderName:   t.SenderName,
		ReceiverID:   t.ReceiverID,
		ReceiverName: t.ReceiverName,
		Deadline:     t.Deadline,
		Attachment:   t.Attachment,
		Completed:    t.Completed,
		CreatedAt:    t.CreatedAt,
	}
}

func TasksToPayload(tasks []*SharedTask) []TaskPayload {
	out := make([]TaskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToPayload(t))
	}
	return out
}
