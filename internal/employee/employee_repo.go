package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindEligibleWorkers returns activated workers and site leads,
	// optionally narrowed to a set of ids and a skill substring.
	FindEligibleWorkers(ctx context.Context, ids []string, skill string) ([]Employee, error)
	// FindNotificationRecipients returns activated managers and site leads.
	FindNotificationRecipients(ctx context.Context) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindEligibleWorkers(ctx context.Context, ids []string, skill string) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Where("role IN ?", []string{RoleWorker, RoleSiteLead}).
		Where("is_activated = ?", true)

	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if skill != "" {
		q = q.Where("skills LIKE ?", "%"+skill+"%")
	}

	var workers []Employee
	err := q.Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *repository) FindNotificationRecipients(ctx context.Context) ([]Employee, error) {
	var recipients []Employee
	err := r.db.WithContext(ctx).
		Where("role IN ?", []string{RoleManager, RoleSiteLead}).
		Where("is_activated = ?", true).
		Find(&recipients).Error
	return recipients, err
}
