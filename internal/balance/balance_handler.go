package balance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/skylift/workforce/internal/shared/apperror"
	"github.com/skylift/workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

// Get returns the calling worker's balance for a year. Workers without a
// balance record get an explicit not-tracked marker instead of a 404.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.GetString("employee_id")

	year := time.Now().UTC().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
			return
		}
		year = parsed
	}

	resp, err := h.service.GetResponse(ctx, employeeID, year)
	if err != nil {
		h.logger.Error("fetch balance failed",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if resp == nil {
		response.Success(c, http.StatusOK, gin.H{
			"balance": nil,
			"tracked": false,
			"year":    year,
		}, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"balance": resp,
		"tracked": true,
		"year":    year,
	}, nil)
}
