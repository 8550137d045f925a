package rule

import (
	"time"

	"go-workforce/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScopeIndividual = "INDIVIDUAL"
	ScopeDepartment = "DEPARTMENT"
	ScopeGlobal     = "GLOBAL"
)

// AttendanceRule is tier-scoped work/break configuration. The holiday list
// and workday set are parsed into typed values when the row is loaded, never
// re-parsed per resolution.
type AttendanceRule struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RuleName       string            `gorm:"column:rule_name;type:varchar(100);not null"`
	Scope          string            `gorm:"column:scope;type:varchar(20);not null;index"`
	EmployeeID     *uuid.UUID        `gorm:"column:employee_id;type:uuid;index"`
	DepartmentID   *uuid.UUID        `gorm:"column:department_id;type:uuid;index"`
	Priority       int               `gorm:"column:priority;not null;default:0"`
	Enabled        bool              `gorm:"column:enabled;not null;default:true"`
	WorkStartTime  domain.TimeOfDay  `gorm:"column:work_start_time;type:varchar(5);not null"`
	WorkEndTime    domain.TimeOfDay  `gorm:"column:work_end_time;type:varchar(5);not null"`
	BreakStartTime *domain.TimeOfDay `gorm:"column:break_start_time;type:varchar(5)"`
	BreakEndTime   *domain.TimeOfDay `gorm:"column:break_end_time;type:varchar(5)"`
	HolidayRules   domain.DateSet    `gorm:"column:holiday_rules;type:jsonb"`
	WorkSchedule   domain.WeekdaySet `gorm:"column:work_schedule;type:jsonb"`
	EffectiveFrom  *time.Time        `gorm:"column:effective_from;type:date"`
	EffectiveTo    *time.Time        `gorm:"column:effective_to;type:date"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"column:deleted_at;index"`
}

func (AttendanceRule) TableName() string {
	return "attendance_rules"
}

// DefaultRule is the built-in fallback used when no configured rule matches.
// Callers must treat it as degraded configuration, not an error.
func DefaultRule() AttendanceRule {
	noon := domain.NewTimeOfDay(12, 0)
	one := domain.NewTimeOfDay(13, 0)
	return AttendanceRule{
		RuleName:       "built-in default",
		Scope:          ScopeGlobal,
		Priority:       0,
		Enabled:        true,
		WorkStartTime:  domain.NewTimeOfDay(9, 0),
		WorkEndTime:    domain.NewTimeOfDay(18, 0),
		BreakStartTime: &noon,
		BreakEndTime:   &one,
	}
}

// IsDefault reports whether the rule is the built-in fallback rather than a
// persisted row.
func (r AttendanceRule) IsDefault() bool {
	return r.ID == uuid.Nil
}
