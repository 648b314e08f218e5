package router

import (
	"complainhub/internal/adapter/api/handler"
	"complainhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/api/auth/verifyToken", authHandler.VerifyToken, middleware.AuthRateLimit())

	protected := e.Group("/api/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
}
