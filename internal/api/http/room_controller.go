package http

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/immxrtalbeast/taskroom/internal/service"
)

// AttachmentSaver stores an uploaded file and returns its descriptor.
type AttachmentSaver interface {
	Save(fileName, contentType string, r io.Reader) (*domain.Attachment, error)
}

type RoomController struct {
	rooms       service.RoomInteractor
	tasks       service.TaskInteractor
	attachments AttachmentSaver
}

func NewRoomController(rooms service.RoomInteractor, tasks service.TaskInteractor, attachments AttachmentSaver) *RoomController {
	return &RoomController{
		rooms:       rooms,
		tasks:       tasks,
		attachments: attachments,
	}
}

func (c *RoomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.rooms.ListRooms(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type request struct {
		RoomName string `json:"roomName" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	room, err := c.rooms.CreateRoom(ctx.Request.Context(), req.RoomName)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"room": gin.H{"name": room.Name, "created_at": room.CreatedAt}})
}

func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	if err := c.rooms.DeleteRoom(ctx.Request.Context(), ctx.Param("roomName")); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *RoomController) AddSharedTask(ctx *gin.Context) {
	roomName := ctx.PostForm("roomName")
	text := ctx.PostForm("task")

	deadline, err := parseDeadline(ctx.PostForm("deadline"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
		return
	}

	var attachment *domain.Attachment
	if file, err := ctx.FormFile("attachment"); err == nil {
		attachment, err = c.saveAttachment(file)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store attachment"})
			return
		}
	}

	task, err := c.tasks.Offer(ctx.Request.Context(), roomName, text, actorFrom(ctx), deadline, attachment)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "task": domain.TaskToPayload(task)})
}

func (c *RoomController) EditSharedTask(ctx *gin.Context) {
	type request struct {
		Task     string `json:"task" binding:"required"`
		Deadline string `json:"deadline"`
	}

	id, ok := taskID(ctx)
	if !ok {
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
		return
	}

	if err := c.tasks.Edit(ctx.Request.Context(), id, actorFrom(ctx), req.Task, deadline); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *RoomController) DeleteSharedTask(ctx *gin.Context) {
	c.taskAction(ctx, c.tasks.Delete)
}

func (c *RoomController) AcceptTask(ctx *gin.Context) {
	c.taskAction(ctx, c.tasks.Accept)
}

func (c *RoomController) DeclineTask(ctx *gin.Context) {
	c.taskAction(ctx, c.tasks.Decline)
}

func (c *RoomController) CompleteSharedTask(ctx *gin.Context) {
	c.taskAction(ctx, c.tasks.Complete)
}

func (c *RoomController) taskAction(ctx *gin.Context, action func(ctx context.Context, id uuid.UUID, actor domain.Actor) error) {
	id, ok := taskID(ctx)
	if !ok {
		return
	}

	if err := action(ctx.Request.Context(), id, actorFrom(ctx)); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *RoomController) saveAttachment(file *multipart.FileHeader) (*domain.Attachment, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return c.attachments.Save(file.Filename, file.Header.Get("Content-Type"), src)
}

func taskID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New("unsupported deadline format")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotSender),
		errors.Is(err, service.ErrNotReceiver):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrRoomExists),
		errors.Is(err, repository.ErrTaskClaimed),
		errors.Is(err, service.ErrTaskCompleted),
		errors.Is(err, repository.ErrUsernameExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyTask),
		errors.Is(err, service.ErrEmptyRoomName),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrMessageTooLong),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptyUsername):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
