package balance

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
	balances := r.Group("/leave/balance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.Get)
	}
}
