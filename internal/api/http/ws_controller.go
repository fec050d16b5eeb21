package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/taskroom/internal/domain"
	"github.com/immxrtalbeast/taskroom/internal/service"
	"github.com/immxrtalbeast/taskroom/lib/logger/sl"
)

// frame is the wire shape of every inbound realtime message. The payload
// stays raw until the named handler decodes it into its typed struct.
type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type wsHandler func(ctx context.Context, client *domain.Client, payload json.RawMessage) error

type WSController struct {
	rooms       service.RoomInteractor
	chat        service.ChatInteractor
	broadcaster service.Broadcaster
	log         *slog.Logger
	upgrader    websocket.Upgrader
	handlers    map[string]wsHandler
}

func NewWSController(rooms service.RoomInteractor, chat service.ChatInteractor, broadcaster service.Broadcaster, log *slog.Logger) *WSController {
	if log == nil {
		log = slog.Default()
	}
	c := &WSController{
		rooms:       rooms,
		chat:        chat,
		broadcaster: broadcaster,
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	c.handlers = map[string]wsHandler{
		domain.EventRequestRoomList:    c.handleRoomList,
		domain.EventJoinRoom:           c.handleJoin,
		domain.EventLeaveRoom:          c.handleLeave,
		domain.EventRequestChatHistory: c.handleHistory,
		domain.EventChatMessage:        c.handleChat,
	}

	return c
}

// Connect upgrades the request and runs the connection's read loop. The
// identity rides in on query parameters placed there by the auth layer.
func (c *WSController) Connect(ctx *gin.Context) {
	username := ctx.Query("name")
	if username == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	userID, err := uuid.Parse(ctx.Query("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := domain.NewClient(userID, username)
	client.Socket = conn
	c.broadcaster.Register(client)
	c.log.Info("client connected", slog.String("client", client.ID), slog.String("user", username))

	go forwardClientEvents(client)

	for {
		var msg frame
		if err := conn.ReadJSON(&msg); err != nil {
			c.rooms.Disconnect(context.Background(), client)
			conn.Close()
			return
		}

		c.dispatch(client, msg)
	}
}

func (c *WSController) dispatch(client *domain.Client, msg frame) {
	handler, ok := c.handlers[msg.Event]
	if !ok {
		c.fail(client, "unsupported event: "+msg.Event)
		return
	}

	if err := handler(context.Background(), client, msg.Payload); err != nil {
		c.log.Info("realtime handler failed",
			slog.String("event", msg.Event),
			slog.String("client", client.ID),
			sl.Err(err),
		)
		c.fail(client, err.Error())
	}
}

// fail answers the offending connection only; realtime errors are never
// broadcast.
func (c *WSController) fail(client *domain.Client, message string) {
	c.broadcaster.Unicast(client.ID, domain.Event{
		Name:    domain.EventError,
		Payload: message,
	})
}

func (c *WSController) handleRoomList(ctx context.Context, client *domain.Client, _ json.RawMessage) error {
	rooms, err := c.rooms.ListRooms(ctx)
	if err != nil {
		return err
	}

	c.broadcaster.Unicast(client.ID, domain.Event{
		Name:    domain.EventRoomListUpdate,
		Payload: rooms,
	})
	return nil
}

func (c *WSController) handleJoin(ctx context.Context, client *domain.Client, payload json.RawMessage) error {
	ref, err := decode[domain.RoomRef](payload)
	if err != nil {
		return err
	}

	return c.rooms.Join(ctx, client, ref.Room)
}

func (c *WSController) handleLeave(ctx context.Context, client *domain.Client, payload json.RawMessage) error {
	ref, err := decode[domain.RoomRef](payload)
	if err != nil {
		return err
	}

	return c.rooms.Leave(ctx, client, ref.Room)
}

func (c *WSController) handleHistory(ctx context.Context, client *domain.Client, payload json.RawMessage) error {
	req, err := decode[domain.HistoryRequest](payload)
	if err != nil {
		return err
	}

	messages, err := c.chat.History(ctx, req.Room, req.Page, req.Limit)
	if err != nil {
		return err
	}

	c.broadcaster.Unicast(client.ID, domain.Event{
		Name:    domain.EventChatHistory,
		Payload: messages,
	})
	return nil
}

func (c *WSController) handleChat(ctx context.Context, client *domain.Client, payload json.RawMessage) error {
	req, err := decode[domain.ChatRequest](payload)
	if err != nil {
		return err
	}

	return c.chat.Post(ctx, req.Room, client.Actor(), req.Message)
}

func decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, nil
	}
	err := json.Unmarshal(payload, &v)
	return v, err
}

func forwardClientEvents(client *domain.Client) {
	for event := range client.Events {
		client.Mutex.Lock()
		socket := client.Socket
		client.Mutex.Unlock()
		if socket == nil {
			return
		}
		if err := socket.WriteJSON(event); err != nil {
			return
		}
	}
}
