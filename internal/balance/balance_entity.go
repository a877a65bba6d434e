package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is seeded yearly by the payroll process. The engine reads it
// and consumes from it on approval; totals are never written here.
type LeaveBalance struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year       int       `gorm:"primaryKey"`

	VacationDaysTotal int             `gorm:"type:int;not null;default:25"`
	VacationDaysUsed  decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	SickDaysUsed      decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	PersonalDaysTotal int             `gorm:"type:int;not null;default:5"`
	PersonalDaysUsed  decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	CarryOverDays     int             `gorm:"type:int;not null;default:0"`
	CarryOverExpires  *time.Time      `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingVacation is total + carry-over minus used.
func (b LeaveBalance) RemainingVacation() decimal.Decimal {
	return decimal.NewFromInt(int64(b.VacationDaysTotal + b.CarryOverDays)).Sub(b.VacationDaysUsed)
}

// RemainingPersonal is total minus used.
func (b LeaveBalance) RemainingPersonal() decimal.Decimal {
	return decimal.NewFromInt(int64(b.PersonalDaysTotal)).Sub(b.PersonalDaysUsed)
}
