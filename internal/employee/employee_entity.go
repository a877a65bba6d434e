package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles used across the engine. Workers and site leads appear in the
// availability matrix; managers and site leads receive leave notifications.
const (
	RoleWorker   = "worker"
	RoleSiteLead = "site-lead"
	RoleManager  = "manager"
)

// Employee mirrors the externally owned directory. The engine only reads it.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex"`
	Role        string    `gorm:"type:varchar(20);not null;index"`
	PhoneNumber *string   `gorm:"type:varchar(30)"`
	// Skills is a comma-separated list of crane-type certifications,
	// e.g. "tower,mobile". Matching is substring-based.
	Skills      string `gorm:"type:varchar(255)"`
	IsActivated bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SkillList splits the comma-separated skills column, dropping empties.
func (e Employee) SkillList() []string {
	parts := strings.Split(e.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
