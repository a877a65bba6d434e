package leave

import (
	"github.com/skylift/workforce/internal/middleware"
	"github.com/skylift/workforce/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	worker := r.Group("/leave")
	worker.Use(middleware.AuthMiddleware())
	{
		worker.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(redisClient),
			handler.Submit,
		)
		worker.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.List)
		worker.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		worker.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Cancel)
	}

	manager := r.Group("/manager/leave")
	manager.Use(middleware.AuthMiddleware())
	{
		manager.GET("", middleware.RBACAuthorize(rbacService, "team-leave", "read"), handler.ListTeam)
		manager.PUT("/:id", middleware.RBACAuthorize(rbacService, "team-leave", "decide"), handler.Decide)
	}
}
