package blackout

import (
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	blackouts := r.Group("/blackout-periods")
	blackouts.Use(middleware.AuthMiddleware())
	{
		blackouts.GET("", middleware.RBACAuthorize(rbacService, "blackout", "read"), handler.GetAll)
		blackouts.GET("/:id", middleware.RBACAuthorize(rbacService, "blackout", "read"), handler.GetById)
		blackouts.POST("", middleware.RBACAuthorize(rbacService, "blackout", "manage"), handler.Create)
		blackouts.PUT("/:id", middleware.RBACAuthorize(rbacService, "blackout", "manage"), handler.Update)
		blackouts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "blackout", "manage"), handler.Deactivate)
	}
}
