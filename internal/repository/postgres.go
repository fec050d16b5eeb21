package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository/model"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrTaskNotFound   = errors.New("shared task not found")
	ErrTaskClaimed    = errors.New("shared task already claimed")
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already taken")
)

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil {
		return errors.New("room is nil")
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Room{}).Where("name = ?", room.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRoomExists
	}

	if err := r.db.WithContext(ctx).Create(toModelRoom(room)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRoomExists
		}
		return err
	}
	return nil
}

func (r *GormRoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room model.Room
	err := r.db.WithContext(ctx).First(&room, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return toDomainRoom(&room), nil
}

func (r *GormRoomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rooms []model.Room
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rooms).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Room, 0, len(rooms))
	for i := range rooms {
		result = append(result, toDomainRoom(&rooms[i]))
	}

	return result, nil
}

func (r *GormRoomRepository) UpdateUsers(ctx context.Context, name string, users []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Room{}).Where("name = ?", name).Update("users", users)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *GormRoomRepository) DeleteCascade(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Room{}, "name = ?", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotFound
		}

		if err := tx.Where("room_name = ?", name).Delete(&model.Message{}).Error; err != nil {
			return err
		}

		return tx.Where("room_name = ?", name).Delete(&model.SharedTask{}).Error
	})
}

type GormSharedTaskRepository struct {
	db *gorm.DB
}

func NewGormSharedTaskRepository(db *gorm.DB) *GormSharedTaskRepository {
	return &GormSharedTaskRepository{db: db}
}

func (r *GormSharedTaskRepository) Create(ctx context.Context, task *domain.SharedTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task == nil {
		return errors.New("task is nil")
	}

	return r.db.WithContext(ctx).Create(toModelTask(task)).Error
}

func (r *GormSharedTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SharedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task model.SharedTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return toDomainTask(&task), nil
}

func (r *GormSharedTaskRepository) Update(ctx context.Context, task *domain.SharedTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task == nil {
		return errors.New("task is nil")
	}

	res := r.db.WithContext(ctx).Model(&model.SharedTask{}).Where("id = ?", task.ID).Updates(map[string]any{
		"task":          task.Task,
		"deadline":      task.Deadline,
		"receiver_id":   task.ReceiverID,
		"receiver_name": task.ReceiverName,
		"completed":     task.Completed,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *GormSharedTaskRepository) Claim(ctx context.Context, id uuid.UUID, receiver domain.Actor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.SharedTask{}).
		Where("id = ? AND receiver_id IS NULL", id).
		Updates(map[string]any{
			"receiver_id":   receiver.ID,
			"receiver_name": receiver.Name,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.SharedTask{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTaskNotFound
		}
		return ErrTaskClaimed
	}
	return nil
}

func (r *GormSharedTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.SharedTask{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *GormSharedTaskRepository) ListByRoom(ctx context.Context, roomName string) ([]*domain.SharedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tasks []model.SharedTask
	if err := r.db.WithContext(ctx).Where("room_name = ?", roomName).Order("created_at").Find(&tasks).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.SharedTask, 0, len(tasks))
	for i := range tasks {
		result = append(result, toDomainTask(&tasks[i]))
	}

	return result, nil
}

func (r *GormSharedTaskRepository) CountsByRoom(ctx context.Context) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type roomCount struct {
		RoomName string
		Count    int64
	}

	var rows []roomCount
	err := r.db.WithContext(ctx).Model(&model.SharedTask{}).
		Select("room_name, count(*) as count").
		Group("room_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.RoomName] = row.Count
	}
	return counts, nil
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg == nil {
		return errors.New("message is nil")
	}

	return r.db.WithContext(ctx).Create(toModelMessage(msg)).Error
}

func (r *GormMessageRepository) ListByRoom(ctx context.Context, roomName string, offset, limit int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("room_name = ?", roomName).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(messages))
	for i := range messages {
		result = append(result, toDomainMessage(&messages[i]))
	}

	return result, nil
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelUser(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func toModelRoom(room *domain.Room) *model.Room {
	users := room.Users
	if users == nil {
		users = []string{}
	}
	return &model.Room{
		Name:      room.Name,
		Users:     users,
		CreatedAt: room.CreatedAt.UTC(),
	}
}

func toDomainRoom(room *model.Room) *domain.Room {
	users := room.Users
	if users == nil {
		users = []string{}
	}
	return &domain.Room{
		Name:      room.Name,
		Users:     users,
		CreatedAt: room.CreatedAt.UTC(),
	}
}

func toModelTask(task *domain.SharedTask) *model.SharedTask {
	m := &model.SharedTask{
		ID:           task.ID,
		Task:         task.Task,
		RoomName:     task.RoomName,
		SenderID:     task.SenderID,
		SenderName:   task.SenderName,
		ReceiverID:   task.ReceiverID,
		ReceiverName: task.ReceiverName,
		Deadline:     task.Deadline,
		Completed:    task.Completed,
		CreatedAt:    task.CreatedAt.UTC(),
	}
	if task.Attachment != nil {
		m.Attachment = model.Attachment{
			FileName:    task.Attachment.FileName,
			FilePath:    task.Attachment.FilePath,
			ContentType: task.Attachment.ContentType,
		}
	}
	return m
}

func toDomainTask(task *model.SharedTask) *domain.SharedTask {
	t := &domain.SharedTask{
		ID:           task.ID,
		Task:         task.Task,
		RoomName:     task.RoomName,
		SenderID:     task.SenderID,
		SenderName:   task.SenderName,
		ReceiverID:   task.ReceiverID,
		ReceiverName: task.ReceiverName,
		Deadline:     task.Deadline,
		Completed:    task.Completed,
		CreatedAt:    task.CreatedAt.UTC(),
	}
	if task.Attachment.FilePath != "" {
		t.Attachment = &domain.Attachment{
			FileName:    task.Attachment.FileName,
			FilePath:    task.Attachment.FilePath,
			ContentType: task.Attachment.ContentType,
		}
	}
	return t
}

func toModelMessage(msg *domain.Message) *model.Message {
	return &model.Message{
		ID:        msg.ID,
		RoomName:  msg.RoomName,
		Username:  msg.Username,
		UserID:    msg.UserID,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		IsItalic:  msg.IsItalic,
		CreatedAt: msg.CreatedAt.UTC(),
	}
}

func toDomainMessage(msg *model.Message) *domain.Message {
	return &domain.Message{
		ID:        msg.ID,
		RoomName:  msg.RoomName,
		Username:  msg.Username,
		UserID:    msg.UserID,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		IsItalic:  msg.IsItalic,
		CreatedAt: msg.CreatedAt.UTC(),
	}
}

func toModelUser(user *domain.User) *model.User {
	return &model.User{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.UTC(),
	}
}

func toDomainUser(user *model.User) *domain.User {
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.UTC(),
	}
}
