package router

import (
	"complainhub/internal/adapter/api/handler"
	"complainhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	// Browsers cannot set headers on WebSocket handshakes, so the token
	// also rides the "token" query parameter.
	e.GET("/ws/complaints", wsHandler.HandleComplaintFeed, authMiddleware.Authenticate)
}
