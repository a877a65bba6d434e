package assignment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskAssignment is read-only input from the external task directory.
type TaskAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_task_assignments_employee"`
	TaskID     uuid.UUID `gorm:"type:uuid;not null"`
	TaskTitle  string    `gorm:"type:varchar(255)"`
	// EstimatedHours is hours per day on this task. Absent means a full
	// 8-hour day.
	EstimatedHours *decimal.Decimal `gorm:"type:numeric(4,1)"`
	TaskStart      time.Time        `gorm:"type:date;not null"`
	TaskDeadline   time.Time        `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultDailyHours applies when an assignment has no estimate.
var DefaultDailyHours = decimal.NewFromInt(8)

// HoursPerDay returns the assignment's daily hours, defaulting to 8.
func (a TaskAssignment) HoursPerDay() decimal.Decimal {
	if a.EstimatedHours == nil {
		return DefaultDailyHours
	}
	return *a.EstimatedHours
}

// Covers reports whether the assignment's inclusive interval contains d.
func (a TaskAssignment) Covers(d time.Time) bool {
	return !d.Before(a.TaskStart) && !d.After(a.TaskDeadline)
}
