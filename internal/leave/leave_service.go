package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/skylift/workforce/internal/balance"
	"github.com/skylift/workforce/internal/calendar"
	"github.com/skylift/workforce/internal/employee"
	"github.com/skylift/workforce/internal/events"
	leaveerrors "github.com/skylift/workforce/internal/leave/errors"
	"github.com/skylift/workforce/internal/messaging/kafka"
	"github.com/skylift/workforce/internal/shared/contextutil"
	"github.com/skylift/workforce/internal/shared/keymutex"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// pgExclusionViolation is raised by the employee/daterange exclusion
// constraint on leave_requests. It backstops the keyed mutex: if two writers
// slip past the application-level overlap check, the second insert fails and
// is surfaced as an overlap conflict.
const pgExclusionViolation = "23P01"

// maxVacationWorkdays caps a single vacation request at four weeks; longer
// absences are split into multiple requests.
const maxVacationWorkdays = 20

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, employeeID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, employeeID, id string) (CancelResult, error)
	ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) (WorkerLeaveListResponse, error)
	ListTeam(ctx context.Context, filter ListFilter) (TeamLeaveListResponse, error)
	Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	holidays    calendar.Repository
	balances    balance.Service
	outbox      kafka.OutboxRepository
	submitLocks *keymutex.KeyMutex
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	holidays calendar.Repository,
	balances balance.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		holidays:    holidays,
		balances:    balances,
		outbox:      outbox,
		submitLocks: keymutex.New(),
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("employee_id", employeeID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	leaveType, ok := ParseLeaveType(strings.ToUpper(req.Type))
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	if req.HalfDay && !leaveType.CanBeHalfDay() {
		return LeaveResponse{}, leaveerrors.ErrHalfDayNotAllowed.WithDetails(map[string]any{
			"type": string(leaveType),
		})
	}

	now := s.now()
	if windowErr := ruleFor(leaveType).Validate(startDate, now, req.EmergencyLeave); windowErr != nil {
		s.logger.Warn("submit leave window violation",
			zap.String("employee_id", employeeID),
			zap.String("type", string(leaveType)),
			zap.String("message", windowErr.Message),
		)
		return LeaveResponse{}, windowErr
	}

	worker, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if worker == nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	if !worker.IsActivated {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotActivated
	}

	// The overlap and balance checks plus the insert form a check-then-act
	// sequence; serialize it per employee.
	s.submitLocks.Lock(employeeID)
	defer s.submitLocks.Unlock(employeeID)

	conflict, err := s.repo.FindOverlapping(ctx, employeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if conflict != nil {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("conflicting_id", conflict.ID.String()),
		)
		return LeaveResponse{}, overlapError(*conflict)
	}

	holidays, err := s.holidays.FindInRange(ctx, startDate, endDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	workDays := calendar.WorkDays(startDate, endDate, holidays)
	if workDays == 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkdays
	}
	if leaveType == TypeVacation && workDays > maxVacationWorkdays {
		return LeaveResponse{}, leaveerrors.ErrVacationTooLong.WithDetails(map[string]any{
			"workdays": workDays,
			"max":      maxVacationWorkdays,
		})
	}

	if leaveType == TypeVacation {
		if err := s.checkVacationBalance(ctx, employeeID, startDate, workDays, req.HalfDay); err != nil {
			return LeaveResponse{}, err
		}
	}

	totalDays := decimal.NewFromInt(int64(workDays))
	if req.HalfDay {
		totalDays = totalDays.Div(decimal.NewFromInt(2))
	}

	l := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		Type:           string(leaveType),
		StartDate:      startDate,
		EndDate:        endDate,
		HalfDay:        req.HalfDay,
		TotalDays:      totalDays,
		Reason:         req.Reason,
		EmergencyLeave: req.EmergencyLeave,
		SickNoteRef:    req.SickNoteRef,
		Status:         StatusPending,
	}

	// Emergency sick leave is auto-approved by the employee themselves.
	if leaveType == TypeSick && req.EmergencyLeave {
		l.Status = StatusApproved
		l.ApprovedBy = &employeeUUID
		approvedAt := now.UTC()
		l.ApprovedAt = &approvedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("status", l.Status),
	)

	s.enqueueLifecycleEvent(ctx, events.LeaveRequestSubmitted, *l, worker.Name, "", "", "")

	return mapToResponse(*l, worker.Name), nil
}

// checkVacationBalance enforces entitlement for vacation requests. Employees
// without a balance record for the year are not entitlement-tracked and the
// check is skipped.
func (s *service) checkVacationBalance(ctx context.Context, employeeID string, startDate time.Time, workDays int, halfDay bool) error {
	year := startDate.UTC().Year()
	b, err := s.balances.Get(ctx, employeeID, year)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	requestDays := workDays
	if halfDay {
		requestDays = int(math.Ceil(float64(workDays) / 2))
		if requestDays < 1 {
			requestDays = 1
		}
	}

	remaining := b.RemainingVacation()
	if decimal.NewFromInt(int64(requestDays)).GreaterThan(remaining) {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.String("available", remaining.String()),
			zap.Int("requested", requestDays),
		)
		return leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
			"available": remaining.String(),
			"requested": requestDays,
		})
	}
	return nil
}

func (s *service) Update(ctx context.Context, employeeID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	startDate := l.StartDate
	endDate := l.EndDate
	datesChanged := false
	if req.StartDate != nil {
		startDate, err = parseDate(*req.StartDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		datesChanged = true
	}
	if req.EndDate != nil {
		endDate, err = parseDate(*req.EndDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		datesChanged = true
	}
	// Only date ordering is re-validated on update; window, overlap and
	// balance checks ran at submission and are not repeated here.
	if datesChanged && startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l.StartDate = startDate
	l.EndDate = endDate
	if req.HalfDay != nil {
		l.HalfDay = *req.HalfDay
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}
	if req.SickNoteRef != nil {
		l.SickNoteRef = req.SickNoteRef
	}

	if datesChanged || req.HalfDay != nil {
		if l.HalfDay && !LeaveType(l.Type).CanBeHalfDay() {
			return LeaveResponse{}, leaveerrors.ErrHalfDayNotAllowed.WithDetails(map[string]any{
				"type": l.Type,
			})
		}
		holidays, err := s.holidays.FindInRange(ctx, startDate, endDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		workDays := calendar.WorkDays(startDate, endDate, holidays)
		if workDays == 0 {
			return LeaveResponse{}, leaveerrors.ErrNoWorkdays
		}
		if l.Type == string(TypeVacation) && workDays > maxVacationWorkdays {
			return LeaveResponse{}, leaveerrors.ErrVacationTooLong.WithDetails(map[string]any{
				"workdays": workDays,
				"max":      maxVacationWorkdays,
			})
		}
		totalDays := decimal.NewFromInt(int64(workDays))
		if l.HalfDay {
			totalDays = totalDays.Div(decimal.NewFromInt(2))
		}
		l.TotalDays = totalDays
	}

	// The PENDING check above ran against a snapshot; the save is
	// conditional so a decision landing in between is not overwritten.
	updated, err := s.repo.UpdateIfStatus(ctx, l, StatusPending)
	if err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !updated {
		s.logger.Warn("update leave lost race with a decision", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l, ""), nil
}

func (s *service) Cancel(ctx context.Context, employeeID, id string) (CancelResult, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CancelResult{}, err
	}
	if l == nil {
		return CancelResult{}, leaveerrors.ErrLeaveNotFound
	}
	if l.EmployeeID.String() != employeeID {
		return CancelResult{}, leaveerrors.ErrNotOwner
	}

	switch l.Status {
	case StatusPending:
		l.Status = StatusCancelled
		cancelled, err := s.repo.UpdateIfStatus(ctx, l, StatusPending)
		if err != nil {
			s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
			return CancelResult{}, err
		}
		if !cancelled {
			return CancelResult{}, leaveerrors.ErrInvalidStateTransition
		}
		s.logger.Info("cancel leave success", zap.String("leave_id", id))
		return CancelResult{Cancelled: true}, nil

	case StatusApproved:
		// Approved leave is not mutated here: managers must sign off on
		// the cancellation. The request is carried as a notification.
		name := ""
		if worker, err := s.employees.FindByID(ctx, employeeID); err == nil && worker != nil {
			name = worker.Name
		}
		s.enqueueLifecycleEvent(ctx, events.LeaveCancellationRequested, *l, name, "", "", "")
		s.logger.Info("cancellation approval requested", zap.String("leave_id", id))
		return CancelResult{RequiresApproval: true}, nil

	default:
		return CancelResult{}, leaveerrors.ErrInvalidStateTransition
	}
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) (WorkerLeaveListResponse, error) {
	requests, total, err := s.repo.FindForEmployee(ctx, employeeID, filter)
	if err != nil {
		return WorkerLeaveListResponse{}, err
	}

	year := s.now().UTC().Year()
	if filter.Year != nil {
		year = *filter.Year
	}
	balanceResp, err := s.balances.GetResponse(ctx, employeeID, year)
	if err != nil {
		return WorkerLeaveListResponse{}, err
	}

	upcoming, err := s.holidays.FindUpcoming(ctx, s.now(), 3)
	if err != nil {
		return WorkerLeaveListResponse{}, err
	}

	return WorkerLeaveListResponse{
		Requests:         mapToListResponse(requests),
		Balance:          balanceResp,
		UpcomingHolidays: upcoming,
		Total:            total,
	}, nil
}

func (s *service) ListTeam(ctx context.Context, filter ListFilter) (TeamLeaveListResponse, error) {
	requests, err := s.repo.FindTeam(ctx, filter)
	if err != nil {
		return TeamLeaveListResponse{}, err
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return TeamLeaveListResponse{}, err
	}

	stats := TeamLeaveStats{
		Pending:   counts[StatusPending],
		Approved:  counts[StatusApproved],
		Rejected:  counts[StatusRejected],
		Cancelled: counts[StatusCancelled],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected + stats.Cancelled

	return TeamLeaveListResponse{
		Requests: mapToListResponse(requests),
		Stats:    stats,
	}, nil
}

func (s *service) Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	action := strings.ToLower(req.Action)
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("action", action),
	)

	if action != "approve" && action != "reject" {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	approver, err := s.employees.FindByID(ctx, approverID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if approver == nil {
		return LeaveResponse{}, leaveerrors.ErrApproverNotFound
	}
	if approver.Role != employee.RoleManager && approver.Role != employee.RoleSiteLead {
		return LeaveResponse{}, leaveerrors.ErrApproverRole
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l == nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid state",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
	}

	if action == "approve" && l.Type == string(TypeVacation) {
		year := l.StartDate.UTC().Year()
		b, err := s.balances.Get(ctx, l.EmployeeID.String(), year)
		if err != nil {
			return LeaveResponse{}, err
		}
		if b != nil {
			remaining := b.RemainingVacation()
			if l.TotalDays.GreaterThan(remaining) {
				return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
					"available": remaining.String(),
					"requested": l.TotalDays.String(),
				})
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	switch action {
	case "approve":
		l.Status = StatusApproved
		l.ApprovedBy = &approverUUID
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case "reject":
		if req.RejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.Status = StatusRejected
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = &req.RejectionReason
	}

	decided, err := s.repo.WithTx(tx).UpdateIfStatus(ctx, l, StatusPending)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !decided {
		s.logger.Warn("decide leave lost race with another writer", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
	}

	// Approval consumes the employee's entitlement in the same transaction
	// as the status write.
	if action == "approve" {
		year := l.StartDate.UTC().Year()
		if err := s.balances.Consume(ctx, tx, l.EmployeeID.String(), year, l.Type, l.TotalDays); err != nil {
			s.logger.Error("decide leave balance consume failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("approver_id", approverID),
	)

	s.enqueueLifecycleEvent(ctx, events.LeaveRequestDecided, *l, "", action, approver.Name, req.RejectionReason)

	return mapToResponse(*l, ""), nil
}

// enqueueLifecycleEvent appends a notification event to the outbox after the
// leave write has committed. The write is the source of truth: enqueue
// failures are logged and never propagated.
func (s *service) enqueueLifecycleEvent(ctx context.Context, eventType string, l LeaveRequest, employeeName, action, approverName, rejectionReason string) {
	priority := events.PriorityNormal
	if l.Type == string(TypeSick) || l.EmergencyLeave || (action == "reject") {
		priority = events.PriorityHigh
	}

	payload := events.LeaveLifecycleEvent{
		EventType:       eventType,
		LeaveRequestID:  l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		EmployeeName:    employeeName,
		LeaveType:       l.Type,
		StartDate:       l.StartDate.UTC().Format("2006-01-02"),
		EndDate:         l.EndDate.UTC().Format("2006-01-02"),
		TotalDays:       l.TotalDays.String(),
		Status:          l.Status,
		Priority:        priority,
		ActionRequired:  l.Status == StatusPending || eventType == events.LeaveCancellationRequested,
		Action:          action,
		ApproverName:    approverName,
		RejectionReason: rejectionReason,
		OccurredAt:      s.now().UTC(),
	}
	if l.ApprovedBy != nil {
		payload.ApproverID = l.ApprovedBy.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("enqueue lifecycle event failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func overlapError(conflict LeaveRequest) error {
	return leaveerrors.ErrLeaveOverlap.WithDetails(map[string]any{
		"conflicting_request": map[string]any{
			"id":         conflict.ID.String(),
			"type":       conflict.Type,
			"start_date": conflict.StartDate.UTC().Format("2006-01-02"),
			"end_date":   conflict.EndDate.UTC().Format("2006-01-02"),
			"status":     conflict.Status,
		},
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
