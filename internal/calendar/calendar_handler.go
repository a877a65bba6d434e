package calendar

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
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{repo: repo, logger: l}
}

// GetHolidays returns the national holiday calendar for a year, or the
// upcoming holidays when upcoming=true, grouped by month.
func (h *Handler) GetHolidays(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	year := now.UTC().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
			return
		}
		year = parsed
	}
	upcoming := c.Query("upcoming") == "true"

	var (
		holidays []PublicHoliday
		err      error
	)
	if upcoming {
		holidays, err = h.repo.FindUpcoming(ctx, now, 12)
	} else {
		holidays, err = h.repo.FindByYear(ctx, year)
	}
	if err != nil {
		h.logger.Error("fetch holidays failed", zap.Int("year", year), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp := HolidayListResponse{
		Holidays:        make([]HolidayResponse, 0, len(holidays)),
		HolidaysByMonth: make(map[string][]HolidayResponse),
		Year:            year,
		TotalHolidays:   len(holidays),
	}
	for _, holiday := range holidays {
		mapped := mapToHolidayResponse(holiday, now, upcoming)
		resp.Holidays = append(resp.Holidays, mapped)
		month := holiday.Date.UTC().Format("2006-01")
		resp.HolidaysByMonth[month] = append(resp.HolidaysByMonth[month], mapped)
	}

	response.Success(c, http.StatusOK, resp, nil)
}
