package calendar

import (
	"time"

	"github.com/google/uuid"
)

type PublicHoliday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_public_holidays_date"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Description string    `gorm:"type:text"`
	Year        int       `gorm:"type:int;not null;index:idx_public_holidays_year"`
	IsNational  bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
