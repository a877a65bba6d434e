package notification

import (
	"net/http"
	"strconv"

	"github.com/skylift/workforce/internal/shared/apperror"
	"github.com/skylift/workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	unreadOnly := c.Query("unread_only") == "true"

	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "limit must be a number", nil)
			return
		}
		limit = parsed
	}

	notifications, err := h.repo.FindForEmployee(c.Request.Context(), employeeID, unreadOnly, limit)
	if err != nil {
		h.logger.Error("fetch notifications failed", zap.String("employee_id", employeeID), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         len(notifications),
	}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	id := c.Param("id")

	if err := h.repo.MarkRead(c.Request.Context(), employeeID, id); err != nil {
		h.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}
