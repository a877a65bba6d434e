package notification

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []Notification) error
	FindForEmployee(ctx context.Context, employeeID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, employeeID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) CreateBatch(ctx context.Context, ns []Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *repository) FindForEmployee(ctx context.Context, employeeID string, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Where("target_employee_id = ?", employeeID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var ns []Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&ns).Error
	return ns, err
}

func (r *repository) MarkRead(ctx context.Context, employeeID, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND target_employee_id = ?", id, employeeID).
		Update("is_read", true).Error
}
