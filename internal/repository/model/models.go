package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Name      string    `gorm:"size:255;primaryKey"`
	Users     []string  `gorm:"serializer:json"`
	CreatedAt time.Time `gorm:"not null"`
}

type Attachment struct {
	FileName    string `gorm:"size:255"`
	FilePath    string `gorm:"size:512"`
	ContentType string `gorm:"size:128"`
}

type SharedTask struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Task         string     `gorm:"not null"`
	RoomName     string     `gorm:"size:255;index;not null"`
	SenderID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	SenderName   string     `gorm:"size:255;not null"`
	ReceiverID   *uuid.UUID `gorm:"type:uuid;index"`
	ReceiverName string     `gorm:"size:255"`
	Deadline     *time.Time
	Attachment   Attachment `gorm:"embedded;embeddedPrefix:attachment_"`
	Completed    bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time  `gorm:"not null"`
}

type Message struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomName  string     `gorm:"size:255;index;not null"`
	Username  string     `gorm:"size:255;not null"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Message   string     `gorm:"not null"`
	IsSystem  bool       `gorm:"not null;default:false"`
	IsItalic  bool       `gorm:"not null;default:false"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Username  string    `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
