package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const CategoryLeave = "LEAVE"

// Notification types written by the leave lifecycle consumer.
const (
	TypeLeaveSubmitted            = "LEAVE_REQUEST_SUBMITTED"
	TypeLeaveApproved             = "LEAVE_REQUEST_APPROVED"
	TypeLeaveRejected             = "LEAVE_REQUEST_REJECTED"
	TypeLeaveCancellationRequest  = "LEAVE_CANCELLATION_REQUESTED"
)

type Notification struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TargetEmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_target"`
	Type             string    `gorm:"type:varchar(40);not null"`
	Title            string    `gorm:"type:varchar(255);not null"`
	Message          string    `gorm:"type:text;not null"`
	Priority         string    `gorm:"type:varchar(10);not null;default:'NORMAL'"`
	Category         string    `gorm:"type:varchar(20);not null;default:'LEAVE'"`
	ActionRequired   bool      `gorm:"not null;default:false"`
	Metadata         json.RawMessage `gorm:"type:jsonb"`
	IsRead           bool            `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
