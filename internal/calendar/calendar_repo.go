package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	FindInRange(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
	FindByYear(ctx context.Context, year int) ([]PublicHoliday, error)
	FindUpcoming(ctx context.Context, from time.Time, months int) ([]PublicHoliday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindInRange(ctx context.Context, from, to time.Time) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("date >= ?", Midnight(from)).
		Where("date <= ?", Midnight(to)).
		Where("is_national = ?", true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByYear(ctx context.Context, year int) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Where("is_national = ?", true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindUpcoming(ctx context.Context, from time.Time, months int) ([]PublicHoliday, error) {
	start := Midnight(from)
	return r.FindInRange(ctx, start, start.AddDate(0, months, 0))
}
