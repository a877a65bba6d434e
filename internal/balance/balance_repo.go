package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*LeaveBalance, error)
	IncrementUsed(ctx context.Context, employeeID string, year int, column string, days decimal.Decimal) error
}

// Columns consumable by IncrementUsed. Kept explicit so raw SQL never
// interpolates caller input as an identifier.
const (
	ColumnVacationUsed = "vacation_days_used"
	ColumnSickUsed     = "sick_days_used"
	ColumnPersonalUsed = "personal_days_used"
)

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) IncrementUsed(ctx context.Context, employeeID string, year int, column string, days decimal.Decimal) error {
	switch column {
	case ColumnVacationUsed, ColumnSickUsed, ColumnPersonalUsed:
	default:
		return fmt.Errorf("unknown balance column: %s", column)
	}

	query := fmt.Sprintf(`
UPDATE leave_balances
SET %s = %s + $1,
	updated_at = NOW()
WHERE employee_id = $2 AND year = $3
`, column, column)

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, days, employeeID, year)
		return err
	}

	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE leave_balances SET %s = %s + ?, updated_at = NOW() WHERE employee_id = ? AND year = ?", column, column),
		days, employeeID, year,
	).Error
}
