package leave

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Submit(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), employeeID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	id := c.Param("id")

	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), employeeID, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	id := c.Param("id")

	result, err := h.service.Cancel(c.Request.Context(), employeeID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.RequiresApproval {
		response.Success(c, http.StatusAccepted, gin.H{
			"cancelled":         false,
			"requires_approval": true,
			"message":           "cancellation of an approved request needs manager sign-off",
		}, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"cancelled":         true,
		"requires_approval": false,
	}, nil)
}

func (h *Handler) List(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	filter, err := parseListFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.service.ListForEmployee(c.Request.Context(), employeeID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListTeam(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if v := c.Query("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	filter.PendingOnly = c.Query("pending_only") == "true"

	resp, err := h.service.ListTeam(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	approverID := c.GetString("employee_id")
	id := c.Param("id")

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), approverID, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseListFilter(c *gin.Context) (ListFilter, error) {
	filter := ListFilter{Page: 1, PageSize: 20}

	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, apperror.InvalidField("year", "must be a number")
		}
		filter.Year = &year
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := c.Query("start_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, apperror.InvalidField("start_from", "must be YYYY-MM-DD")
		}
		filter.StartFrom = &t
	}
	if v := c.Query("start_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, apperror.InvalidField("start_to", "must be YYYY-MM-DD")
		}
		filter.StartTo = &t
	}
	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, apperror.InvalidField("page", "must be a positive number")
		}
		filter.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > 100 {
			return filter, apperror.InvalidField("page_size", "must be between 1 and 100")
		}
		filter.PageSize = size
	}

	return filter, nil
}
