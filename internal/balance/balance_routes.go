package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", handler.GetMine)
		balances.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByUser)
		balances.GET("/:id/movements", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMovements)
		balances.POST("", middleware.RBACAuthorize(rbacService, "balance", "manage"), handler.Grant)
		balances.POST("/:id/adjust", middleware.RBACAuthorize(rbacService, "balance", "manage"), handler.Adjust)
	}
}
