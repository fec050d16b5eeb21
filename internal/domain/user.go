package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the durable participant record referenced by shared tasks and
// messages. Credentials and profile data live with the external auth system.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(name, username string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

// Actor is the authenticated identity attached to a request or connection by
// the session bridge. Authorization decisions always compare Actor.ID against
// the store, never against presence.
type Actor struct {
	ID   uuid.UUID
	Name string
}
