package availability

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
	matrix := r.Group("/availability")
	matrix.Use(middleware.AuthMiddleware())
	{
		matrix.GET("/matrix", middleware.RBACAuthorize(rbacService, "availability", "read"), handler.GetMatrix)
	}
}
