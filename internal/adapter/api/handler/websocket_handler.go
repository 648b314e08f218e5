package handler

import (
	"context"
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainrepo "complainhub/internal/domain/repository"
	ws "complainhub/internal/infrastructure/websocket"
	"complainhub/internal/usecase"
	"complainhub/pkg/errors"
	"complainhub/pkg/logger"
)

// WebSocketHandler serves the live complaint feed. Each connection gets its
// own store subscription scoped to what the caller may see, plus the shared
// event broadcasts from the manager.
type WebSocketHandler struct {
	wsManager        *ws.Manager
	complaintUseCase *usecase.ComplaintUseCase
	authUseCase      *usecase.AuthUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the portal origin once it is fixed
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, complaintUseCase *usecase.ComplaintUseCase, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:        wsManager,
		complaintUseCase: complaintUseCase,
		authUseCase:      authUseCase,
	}
}

type feedSnapshot struct {
	Type       string      `json:"type"`
	Complaints interface{} `json:"complaints"`
}

func (h *WebSocketHandler) HandleComplaintFeed(c echo.Context) error {
	uid, ok := c.Get("uid").(string)
	if !ok || uid == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	// Students only see their own complaints on the feed.
	filter := domainrepo.ComplaintFilter{}
	if !user.IsAdmin() {
		filter.StudentID = user.StudentID
		if filter.StudentID == "" {
			filter.StudentID = user.ID
		}
	}

	// The request context ends when this handler returns, so the watch runs
	// on its own context and is torn down when the connection drops.
	sub, err := h.complaintUseCase.Watch(context.Background(), filter)
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		sub.Close()
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: uid,
		Role:   string(user.Role),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	h.wsManager.Register <- client

	go h.pumpSnapshots(client, sub)
	go client.WritePump()
	go func() {
		client.ReadPump(h.wsManager)
		sub.Close()
	}()

	return nil
}

// pumpSnapshots forwards store snapshots until the subscription closes.
// Delivery goes through the manager, which owns the send channel lifecycle.
func (h *WebSocketHandler) pumpSnapshots(client *ws.Client, sub *domainrepo.Subscription) {
	for complaints := range sub.C {
		payload, err := json.Marshal(feedSnapshot{Type: "snapshot", Complaints: complaints})
		if err != nil {
			logger.Error("Failed to encode complaint snapshot: %v", err)
			continue
		}
		h.wsManager.SendToUser(client.UserID, payload)
	}
}
