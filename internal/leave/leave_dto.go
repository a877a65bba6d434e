package leave

import (
	"time"

	"github.com/skylift/workforce/internal/balance"
	"github.com/skylift/workforce/internal/calendar"
)

type CreateLeaveRequest struct {
	Type           string  `json:"type" binding:"required,oneof=VACATION SICK PERSONAL PARENTAL COMPENSATORY EMERGENCY"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	HalfDay        bool    `json:"half_day"`
	Reason         string  `json:"reason"`
	EmergencyLeave bool    `json:"emergency_leave"`
	SickNoteRef    *string `json:"sick_note_ref"`
}

// UpdateLeaveRequest is a partial update; absent fields keep their value.
type UpdateLeaveRequest struct {
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	HalfDay     *bool   `json:"half_day"`
	Reason      *string `json:"reason"`
	SickNoteRef *string `json:"sick_note_ref"`
}

type DecideLeaveRequest struct {
	Action          string `json:"action" binding:"required,oneof=approve reject APPROVE REJECT"`
	RejectionReason string `json:"rejection_reason"`
}

type ListFilter struct {
	Year        *int
	Status      *string
	EmployeeID  *string
	Type        *string
	StartFrom   *time.Time
	StartTo     *time.Time
	PendingOnly bool
	Page        int
	PageSize    int
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	HalfDay         bool    `json:"half_day"`
	TotalDays       string  `json:"total_days"`
	Reason          string  `json:"reason,omitempty"`
	EmergencyLeave  bool    `json:"emergency_leave"`
	SickNoteRef     *string `json:"sick_note_ref,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// WorkerLeaveListResponse bundles a worker's requests with their balance and
// the upcoming national holidays, matching what the leave screens consume.
type WorkerLeaveListResponse struct {
	Requests         []LeaveResponse            `json:"leave_requests"`
	Balance          *balance.BalanceResponse   `json:"leave_balance"`
	UpcomingHolidays []calendar.PublicHoliday   `json:"upcoming_holidays"`
	Total            int64                      `json:"total"`
}

type TeamLeaveStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type TeamLeaveListResponse struct {
	Requests []LeaveResponse `json:"leave_requests"`
	Stats    TeamLeaveStats  `json:"stats"`
}

// CancelResult distinguishes a direct cancellation from one that needs a
// manager's sign-off on an already approved request.
type CancelResult struct {
	Cancelled        bool `json:"cancelled"`
	RequiresApproval bool `json:"requires_approval"`
}

func mapToResponse(l LeaveRequest, employeeName string) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		EmployeeName:   employeeName,
		Type:           l.Type,
		StartDate:      l.StartDate.UTC().Format("2006-01-02"),
		EndDate:        l.EndDate.UTC().Format("2006-01-02"),
		HalfDay:        l.HalfDay,
		TotalDays:      l.TotalDays.String(),
		Reason:         l.Reason,
		EmergencyLeave: l.EmergencyLeave,
		SickNoteRef:    l.SickNoteRef,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l, "")
	}
	return resp
}
