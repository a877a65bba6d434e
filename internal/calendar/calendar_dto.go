package calendar

import "time"

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Year        int    `json:"year"`
	IsNational  bool   `json:"is_national"`
	DaysUntil   *int   `json:"days_until,omitempty"`
}

type HolidayListResponse struct {
	Holidays        []HolidayResponse            `json:"holidays"`
	HolidaysByMonth map[string][]HolidayResponse `json:"holidays_by_month"`
	Year            int                          `json:"year"`
	TotalHolidays   int                          `json:"total_holidays"`
}

func mapToHolidayResponse(h PublicHoliday, now time.Time, upcoming bool) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID.String(),
		Date:        h.Date.UTC().Format("2006-01-02"),
		Name:        h.Name,
		Description: h.Description,
		Year:        h.Year,
		IsNational:  h.IsNational,
	}
	if upcoming {
		days := int(Midnight(h.Date).Sub(Midnight(now)).Hours() / 24)
		resp.DaysUntil = &days
	}
	return resp
}
