package shift

import (
	"time"

	"go-workforce/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is a reusable work-window template that schedule entries can point
// at. Schedules copy its window at assignment time; editing a shift does not
// rewrite existing schedule rows.
type Shift struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      string           `gorm:"column:code;type:varchar(30);not null;uniqueIndex:uq_shift_code"`
	Name      string           `gorm:"column:name;type:varchar(100);not null"`
	StartTime domain.TimeOfDay `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime   domain.TimeOfDay `gorm:"column:end_time;type:varchar(5);not null"`
	Enabled   bool             `gorm:"column:enabled;not null;default:true"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"column:deleted_at;index"`
}

func (Shift) TableName() string {
	return "shifts"
}
