package schedule

import (
	"time"

	"go-workforce/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeNormal   = "NORMAL"
	TypeOvertime = "OVERTIME"
	TypeRest     = "REST"
	TypeHoliday  = "HOLIDAY"
	TypeLeave    = "LEAVE"
)

// AttendanceSchedule assigns one employee one planned day. The database
// enforces at most one live row per (employee, date) via
// uq_attendance_schedule_day.
type AttendanceSchedule struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID         `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_schedule_day"`
	ScheduleDate   time.Time         `gorm:"column:schedule_date;type:date;not null;uniqueIndex:uq_attendance_schedule_day"`
	ScheduleType   string            `gorm:"column:schedule_type;type:varchar(20);not null"`
	IsHoliday      bool              `gorm:"column:is_holiday;not null;default:false"`
	OvertimeRate   *decimal.Decimal  `gorm:"column:overtime_rate;type:numeric(4,2)"`
	ShiftID        *uuid.UUID        `gorm:"column:shift_id;type:uuid"`
	WorkStartTime  domain.TimeOfDay  `gorm:"column:work_start_time;type:varchar(5);not null"`
	WorkEndTime    domain.TimeOfDay  `gorm:"column:work_end_time;type:varchar(5);not null"`
	BreakStartTime *domain.TimeOfDay `gorm:"column:break_start_time;type:varchar(5)"`
	BreakEndTime   *domain.TimeOfDay `gorm:"column:break_end_time;type:varchar(5)"`
	Remark         string            `gorm:"column:remark;type:varchar(255)"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"column:deleted_at;index"`
}

func (AttendanceSchedule) TableName() string {
	return "attendance_schedules"
}

// IsWorkingType reports whether the entry plans actual work on the day.
func (s AttendanceSchedule) IsWorkingType() bool {
	return s.ScheduleType == TypeNormal || s.ScheduleType == TypeOvertime
}

// MarksHoliday reports whether the entry declares the day a holiday, either
// via the explicit flag or the HOLIDAY type. A working-type entry never
// marks a holiday regardless of the flag.
func (s AttendanceSchedule) MarksHoliday() bool {
	if s.IsWorkingType() {
		return false
	}
	return s.IsHoliday || s.ScheduleType == TypeHoliday
}

func validScheduleType(t string) bool {
	switch t {
	case TypeNormal, TypeOvertime, TypeRest, TypeHoliday, TypeLeave:
		return true
	}
	return false
}
