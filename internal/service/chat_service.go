package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/immxrtalbeast/taskroom/lib/logger/sl"
)

var (
	ErrEmptyMessage   = errors.New("message text is required")
	ErrMessageTooLong = errors.New("message is too long")
)

const maxMessageLength = 4000

// DefaultHistoryPageSize applies when a history request carries no limit.
const DefaultHistoryPageSize = 20

type ChatService struct {
	messages    repository.MessageRepository
	broadcaster Broadcaster
	log         *slog.Logger
	pageSize    int
}

func NewChatService(messages repository.MessageRepository, broadcaster Broadcaster, log *slog.Logger, pageSize int) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultHistoryPageSize
	}
	return &ChatService{
		messages:    messages,
		broadcaster: broadcaster,
		log:         log,
		pageSize:    pageSize,
	}
}

// Post persists a user message and broadcasts it verbatim to the room,
// including back to the author.
func (s *ChatService) Post(ctx context.Context, room string, author domain.Actor, text string) error {
	const op = "service.chat.post"

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return ErrMessageTooLong
	}

	msg := domain.NewMessage(room, author, text)
	if err := s.messages.Create(ctx, msg); err != nil {
		s.log.Error("failed to save message", slog.String("op", op), sl.Err(err))
		return err
	}

	s.broadcaster.Broadcast(room, domain.Event{
		Name:    domain.EventChatMessage,
		Payload: domain.MessageToPayload(msg),
	})
	return nil
}

// PostSystem persists and broadcasts a server-generated lifecycle notice.
// System messages land in history exactly like user messages.
func (s *ChatService) PostSystem(ctx context.Context, room, text string, italic bool) error {
	const op = "service.chat.postSystem"

	msg := domain.NewSystemMessage(room, text, italic)
	if err := s.messages.Create(ctx, msg); err != nil {
		s.log.Error("failed to save system message", slog.String("op", op), sl.Err(err))
		return err
	}

	s.broadcaster.Broadcast(room, domain.Event{
		Name:    domain.EventChatMessage,
		Payload: domain.MessageToPayload(msg),
	})
	return nil
}

// History returns one zero-based page of messages, oldest-first. The store is
// queried newest-first and the page reversed, so increasing pages walk
// backwards through time while each page reads chronologically. A page past
// the end yields an empty slice, not an error.
func (s *ChatService) History(ctx context.Context, room string, page, limit int) ([]domain.MessagePayload, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	if page < 0 {
		page = 0
	}

	msgs, err := s.messages.ListByRoom(ctx, room, page*limit, limit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MessagePayload, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		result = append(result, domain.MessageToPayload(msgs[i]))
	}
	return result, nil
}
