package events

import "time"

const LeaveLifecycleTopic = "workforce.leave.lifecycle.v1"

const (
	LeaveRequestSubmitted      = "leave.request.submitted"
	LeaveRequestDecided        = "leave.request.decided"
	LeaveCancellationRequested = "leave.cancellation.requested"
)

const (
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
)

// LeaveLifecycleEvent is the single payload for the leave topic; EventType
// selects which fields are meaningful.
type LeaveLifecycleEvent struct {
	EventType      string `json:"event_type"`
	LeaveRequestID string `json:"leave_request_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      string `json:"total_days"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	ActionRequired bool   `json:"action_required"`
	// Decision fields, set for leave.request.decided.
	Action          string `json:"action,omitempty"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApproverName    string `json:"approver_name,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
