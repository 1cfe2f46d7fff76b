package notification

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("/me", handler.ListMine)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}
