package assignment

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
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.GET("", middleware.RBACAuthorize(rbacService, "assignment", "read"), handler.ListAssignments)
		assignments.GET("/managers/:managerId/coverage", middleware.RBACAuthorize(rbacService, "assignment", "read"), handler.GetManagerCoverage)
		assignments.POST("", middleware.RBACAuthorize(rbacService, "assignment", "manage"), handler.CreateAssignment)
		assignments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "assignment", "manage"), handler.DeactivateAssignment)
	}

	delegations := r.Group("/delegations")
	delegations.Use(middleware.AuthMiddleware())
	{
		delegations.GET("", middleware.RBACAuthorize(rbacService, "delegation", "read"), handler.ListDelegations)
		delegations.POST("", middleware.RBACAuthorize(rbacService, "delegation", "manage"), handler.CreateDelegation)
		delegations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "delegation", "manage"), handler.DeactivateDelegation)
	}
}
