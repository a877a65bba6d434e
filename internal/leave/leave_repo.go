package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	// UpdateIfStatus writes the request's mutable fields only while the
	// stored status still equals expectedStatus. Returns false when
	// another writer changed the row between read and save.
	UpdateIfStatus(ctx context.Context, l *LeaveRequest, expectedStatus string) (bool, error)
	// FindOverlapping returns the first PENDING or APPROVED request for
	// the employee whose inclusive interval intersects [start, end],
	// boundary dates included, or nil when none conflicts.
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (*LeaveRequest, error)
	FindForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]LeaveRequest, int64, error)
	FindTeam(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// FindApprovedInRange returns APPROVED requests for the given
	// employees intersecting [from, to]; used by availability aggregation.
	FindApprovedInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LeaveRequest, error)
}

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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateIfStatus(ctx context.Context, l *LeaveRequest, expectedStatus string) (bool, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
UPDATE leave_requests
SET start_date = $1, end_date = $2, half_day = $3, total_days = $4,
	reason = $5, sick_note_ref = $6, status = $7, approved_by = $8,
	approved_at = $9, rejection_reason = $10, updated_at = NOW()
WHERE id = $11 AND status = $12
`,
			l.StartDate, l.EndDate, l.HalfDay, l.TotalDays,
			l.Reason, l.SickNoteRef, l.Status, l.ApprovedBy,
			l.ApprovedAt, l.RejectionReason, l.ID, expectedStatus,
		)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", expectedStatus).
		Updates(map[string]interface{}{
			"start_date":       l.StartDate,
			"end_date":         l.EndDate,
			"half_day":         l.HalfDay,
			"total_days":       l.TotalDays,
			"reason":           l.Reason,
			"sick_note_ref":    l.SickNoteRef,
			"status":           l.Status,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (*LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC")

	if excludeID != nil && *excludeID != "" {
		q = q.Where("id <> ?", *excludeID)
	}

	var l LeaveRequest
	err := q.First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID)

	if filter.Year != nil {
		q = q.Where("start_date >= ? AND start_date <= ?",
			time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(*filter.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var requests []LeaveRequest
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindTeam(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	} else if filter.PendingOnly {
		q = q.Where("status = ?", StatusPending)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.StartFrom != nil {
		q = q.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		q = q.Where("start_date <= ?", *filter.StartTo)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var requests []LeaveRequest
	err := q.Order("status ASC").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) FindApprovedInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}
