package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyUsername = errors.New("username is required")
)

type UserService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, log: log}
}

func (s *UserService) CreateUser(ctx context.Context, name, username string) (*domain.User, error) {
	const op = "service.user.create"

	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if name == "" {
		return nil, ErrEmptyName
	}
	if username == "" {
		return nil, ErrEmptyUsername
	}

	user := domain.NewUser(name, username)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user created", slog.String("op", op), slog.String("username", username))
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
