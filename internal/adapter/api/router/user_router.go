package router

import (
	"complainhub/internal/adapter/api/handler"
	"complainhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	// Public routes
	e.POST("/api/user/signup", userHandler.Signup, middleware.AuthRateLimit())
	e.POST("/api/user/signin", userHandler.Signin, middleware.AuthRateLimit())
	e.POST("/api/user/admin/login", userHandler.AdminLogin, middleware.AuthRateLimit())

	// Authenticated routes
	protected := e.Group("/api/user")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", userHandler.Me)

	// Admin-only user management
	admin := e.Group("/api/user")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("/all", userHandler.ListUsers)
	admin.GET("/all-auth", userHandler.ListAuthUsers)
	admin.PUT("/edit/:id", userHandler.EditUser)

	// Block/unblock accept every verb legacy clients used.
	admin.PUT("/block/:id", userHandler.BlockUser)
	admin.PATCH("/block/:id", userHandler.BlockUser)
	admin.POST("/block/:id", userHandler.BlockUser)
	admin.PUT("/unblock/:id", userHandler.UnblockUser)
	admin.PATCH("/unblock/:id", userHandler.UnblockUser)
	admin.POST("/unblock/:id", userHandler.UnblockUser)
}
