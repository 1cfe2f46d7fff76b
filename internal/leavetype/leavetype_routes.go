package leavetype

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
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetAll)
		leaveTypes.GET("/options", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetOptions)
		leaveTypes.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetById)
		leaveTypes.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Create)
		leaveTypes.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Update)
		leaveTypes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Deactivate)
	}
}
