package assignment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	// FindOverlappingRange returns assignments for the given employees
	// whose [task_start, task_deadline] interval intersects [from, to].
	FindOverlappingRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]TaskAssignment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOverlappingRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]TaskAssignment, error) {
	var assignments []TaskAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("NOT (task_deadline < ? OR task_start > ?)", from, to).
		Order("task_start ASC").
		Find(&assignments).Error
	return assignments, err
}
