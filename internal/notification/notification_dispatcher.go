package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skylift/workforce/internal/employee"
	"github.com/skylift/workforce/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher turns leave lifecycle events into notification rows. Submissions
// and cancellation requests fan out to managers and site leads; decisions go
// back to the requester.
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type dispatcher struct {
	notifications Repository
	employees     employee.Repository
	logger        *zap.Logger
}

func NewDispatcher(notifications Repository, employees employee.Repository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &dispatcher{notifications: notifications, employees: employees, logger: l}
}

func (d *dispatcher) Dispatch(ctx context.Context, event events.LeaveLifecycleEvent) error {
	switch event.EventType {
	case events.LeaveRequestSubmitted:
		return d.notifyApprovers(ctx, event,
			TypeLeaveSubmitted,
			"New leave request",
			fmt.Sprintf("%s requested %s leave from %s to %s (%s days)",
				event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate, event.TotalDays),
		)

	case events.LeaveCancellationRequested:
		return d.notifyApprovers(ctx, event,
			TypeLeaveCancellationRequest,
			"Cancellation of approved leave requested",
			fmt.Sprintf("%s asked to cancel approved %s leave from %s to %s",
				event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate),
		)

	case events.LeaveRequestDecided:
		return d.notifyRequester(ctx, event)

	default:
		d.logger.Warn("unknown lifecycle event type, skipping",
			zap.String("event_type", event.EventType),
			zap.String("leave_request_id", event.LeaveRequestID),
		)
		return nil
	}
}

func (d *dispatcher) notifyApprovers(ctx context.Context, event events.LeaveLifecycleEvent, notifType, title, message string) error {
	recipients, err := d.employees.FindNotificationRecipients(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		d.logger.Warn("no notification recipients found",
			zap.String("leave_request_id", event.LeaveRequestID),
		)
		return nil
	}

	metadata, err := json.Marshal(event)
	if err != nil {
		return err
	}

	rows := make([]Notification, 0, len(recipients))
	for _, r := range recipients {
		// The requester never gets their own submission notice.
		if r.ID.String() == event.EmployeeID {
			continue
		}
		rows = append(rows, Notification{
			ID:               uuid.New(),
			TargetEmployeeID: r.ID,
			Type:             notifType,
			Title:            title,
			Message:          message,
			Priority:         event.Priority,
			Category:         CategoryLeave,
			ActionRequired:   true,
			Metadata:         metadata,
		})
	}

	if err := d.notifications.CreateBatch(ctx, rows); err != nil {
		return err
	}

	d.logger.Info("approver notifications created",
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("type", notifType),
		zap.Int("recipients", len(rows)),
	)
	return nil
}

func (d *dispatcher) notifyRequester(ctx context.Context, event events.LeaveLifecycleEvent) error {
	targetID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		d.logger.Error("lifecycle event carries invalid employee id, skipping",
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}

	notifType := TypeLeaveApproved
	title := "Leave request approved"
	message := fmt.Sprintf("Your %s leave from %s to %s was approved by %s",
		event.LeaveType, event.StartDate, event.EndDate, event.ApproverName)
	if event.Action == "reject" {
		notifType = TypeLeaveRejected
		title = "Leave request rejected"
		message = fmt.Sprintf("Your %s leave from %s to %s was rejected: %s",
			event.LeaveType, event.StartDate, event.EndDate, event.RejectionReason)
	}

	metadata, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = d.notifications.Create(ctx, &Notification{
		ID:               uuid.New(),
		TargetEmployeeID: targetID,
		Type:             notifType,
		Title:            title,
		Message:          message,
		Priority:         event.Priority,
		Category:         CategoryLeave,
		ActionRequired:   false,
		Metadata:         metadata,
	})
	if err != nil {
		return err
	}

	d.logger.Info("decision notification created",
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("type", notifType),
		zap.String("target_employee_id", event.EmployeeID),
	)
	return nil
}
