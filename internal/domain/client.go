package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const clientEventBuffer = 16

// Client is an active realtime connection with its attached identity. Events
// is drained by the connection's writer goroutine; the hub drops events when
// the buffer is full so a stalled consumer never blocks a room.
type Client struct {
	ID       string
	UserID   uuid.UUID
	Username string
	JoinedAt time.Time

	Mutex  sync.Mutex
	Socket *websocket.Conn
	Events chan Event
}

func NewClient(userID uuid.UUID, username string) *Client {
	return &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		JoinedAt: time.Now().UTC(),
		Events:   make(chan Event, clientEventBuffer),
	}
}

// Actor returns the identity this connection acts as.
func (c *Client) Actor() Actor {
	return Actor{ID: c.UserID, Name: c.Username}
}
