package hierarchy

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
	hierarchies := r.Group("/hierarchies")
	hierarchies.Use(middleware.AuthMiddleware())
	{
		hierarchies.GET("", middleware.RBACAuthorize(rbacService, "hierarchy", "read"), handler.GetAll)
		hierarchies.GET("/:id", middleware.RBACAuthorize(rbacService, "hierarchy", "read"), handler.GetById)
		hierarchies.POST("", middleware.RBACAuthorize(rbacService, "hierarchy", "manage"), handler.Create)
		hierarchies.PUT("/:id", middleware.RBACAuthorize(rbacService, "hierarchy", "manage"), handler.Update)
		hierarchies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "hierarchy", "manage"), handler.Delete)
	}
}
