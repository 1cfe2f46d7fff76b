package leave

import (
	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", handler.Submit)
		requests.GET("/me", handler.ListMine)
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, "leave_request", "review"), handler.ListPending)
		requests.POST("/:id/decide", middleware.RBACAuthorize(rbacService, "leave_request", "review"), handler.Decide)
		requests.GET("/:id/history", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetHistory)
		requests.GET("/hierarchy/:hierarchyId", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.ListByHierarchy)
	}
}
