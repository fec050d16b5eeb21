package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemUsername is the author recorded on server-generated chat notices.
const SystemUsername = "System"

// Message is an append-only chat record scoped to a room name. Messages are
// never edited or deleted individually; the room deletion cascade is the only
// bulk removal path.
type Message struct {
	ID        uuid.UUID
	RoomName  string
	Username  string
	UserID    *uuid.UUID
	Message   string
	IsSystem  bool
	IsItalic  bool
	CreatedAt time.Time
}

func NewMessage(roomName string, author Actor, text string) *Message {
	msg := &Message{
		ID:        uuid.New(),
		RoomName:  roomName,
		Username:  author.Name,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
	if author.ID != uuid.Nil {
		id := author.ID
		msg.UserID = &id
	}
	return msg
}

// NewSystemMessage builds a server-generated lifecycle notice. System
// messages are persisted exactly like user messages and appear in history.
func NewSystemMessage(roomName, text string, italic bool) *Message {
	return &Message{
		ID:        uuid.New(),
		RoomName:  roomName,
		Username:  SystemUsername,
		Message:   text,
		IsSystem:  true,
		IsItalic:  italic,
		CreatedAt: time.Now().UTC(),
	}
}
