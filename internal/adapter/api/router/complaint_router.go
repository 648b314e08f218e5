package router

import (
	"complainhub/internal/adapter/api/handler"
	"complainhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupComplaintRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	complaintHandler := handler.GetComplaintHandler()

	protected := e.Group("/api/complaint")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/create", complaintHandler.Create, middleware.SubmitRateLimit())
	protected.GET("/mine", complaintHandler.ListMine)
	protected.GET("/:id", complaintHandler.GetByID)
	protected.POST("/:id/comment", complaintHandler.AddComment, middleware.CommentRateLimit())

	admin := e.Group("/api/complaint")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("/all", complaintHandler.ListAll)
	admin.GET("/user/:uid", complaintHandler.ListForUser)
	admin.PUT("/:id/status", complaintHandler.UpdateStatus)
	admin.POST("/admin/classify-priority", complaintHandler.ClassifyPriority)
}
