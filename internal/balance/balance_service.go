package balance

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// Get returns (nil, nil) when no balance record exists for the year.
	// An absent record means the employee is not entitlement-tracked and
	// callers must skip balance checks for them. This is policy, not an
	// error condition.
	Get(ctx context.Context, employeeID string, year int) (*LeaveBalance, error)
	GetResponse(ctx context.Context, employeeID string, year int) (*BalanceResponse, error)
	// Consume records approved leave days against the year's usage
	// counter for the given leave type. Types without a tracked counter,
	// and employees without a balance record, are a no-op.
	Consume(ctx context.Context, tx *sql.Tx, employeeID string, year int, leaveType string, days decimal.Decimal) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, employeeID string, year int) (*LeaveBalance, error) {
	return s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
}

func (s *service) GetResponse(ctx context.Context, employeeID string, year int) (*BalanceResponse, error) {
	b, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err != nil || b == nil {
		return nil, err
	}
	resp := mapToResponse(*b, time.Now())
	return &resp, nil
}

// usedColumnFor maps a leave type to its usage counter. Leave types that do
// not draw from an entitlement (parental, compensatory, emergency) have none.
func usedColumnFor(leaveType string) (string, bool) {
	switch leaveType {
	case "VACATION":
		return ColumnVacationUsed, true
	case "SICK":
		return ColumnSickUsed, true
	case "PERSONAL":
		return ColumnPersonalUsed, true
	default:
		return "", false
	}
}

func (s *service) Consume(ctx context.Context, tx *sql.Tx, employeeID string, year int, leaveType string, days decimal.Decimal) error {
	column, tracked := usedColumnFor(leaveType)
	if !tracked {
		return nil
	}

	existing, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return err
	}
	if existing == nil {
		s.logger.Debug("no balance record, consume skipped",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.String("leave_type", leaveType),
		)
		return nil
	}

	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}
	if err := repo.IncrementUsed(ctx, employeeID, year, column, days); err != nil {
		return err
	}

	s.logger.Info("balance consumed",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.String("leave_type", leaveType),
		zap.String("days", days.String()),
	)
	return nil
}
