package domain

import (
	"time"
)

// Room is a named realtime channel and the durable scoping key for chat
// messages and shared tasks. The name is the lookup key and is globally
// unique. Users holds the connection ids currently joined; it is best-effort
// presence and may go stale if a connection dies without a clean leave.
type Room struct {
	Name      string
	Users     []string
	CreatedAt time.Time
}

func NewRoom(name string) *Room {
	return &Room{
		Name:      name,
		Users:     []string{},
		CreatedAt: time.Now().UTC(),
	}
}

// RoomSummary is the lobby view of a room: the durable record plus the
// computed count of shared tasks scoped to it.
type RoomSummary struct {
	Name      string    `json:"name"`
	UserCount int       `json:"user_count"`
	TaskCount int64     `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
}
