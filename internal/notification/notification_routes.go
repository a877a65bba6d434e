package notification

import (
	"github.com/skylift/workforce/internal/middleware"
	"github.com/skylift/workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.List)
		notifications.PUT("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
	}
}
