package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	Type      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	HalfDay   bool      `gorm:"not null;default:false"`
	// TotalDays is fixed at submission: the request's workday count, or
	// half of it for half-day requests. Ranges with zero workdays are
	// rejected, so it is always at least 0.5.
	TotalDays      decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	Reason         string          `gorm:"type:text"`
	EmergencyLeave bool            `gorm:"not null;default:false"`
	SickNoteRef    *string         `gorm:"type:varchar(255)"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	// RejectionReason is set only on REJECTED requests.
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the request can no longer change.
func (l LeaveRequest) IsTerminal() bool {
	return l.Status == StatusRejected || l.Status == StatusCancelled
}

// Covers reports whether the request's inclusive date interval contains d.
func (l LeaveRequest) Covers(d time.Time) bool {
	return !d.Before(l.StartDate) && !d.After(l.EndDate)
}
