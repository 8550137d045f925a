package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusNormal     = "NORMAL"
	StatusLate       = "LATE"
	StatusEarlyLeave = "EARLY_LEAVE"
	StatusAbnormal   = "ABNORMAL"
	StatusAbsent     = "ABSENT"
	StatusLeave      = "LEAVE"
	StatusHoliday    = "HOLIDAY"
	StatusRest       = "REST"
)

const (
	ExceptionLate           = "LATE"
	ExceptionEarlyLeave     = "EARLY_LEAVE"
	ExceptionAbsenteeism    = "ABSENTEEISM"
	ExceptionForgetPunch    = "FORGET_PUNCH"
	ExceptionLateEarlyLeave = "LATE_EARLY_LEAVE"
)

const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// AttendanceRecord is the single logical record for one employee on one
// date. uq_attendance_record_day guarantees there is never more than one
// live row per (employee, date); punches and backfill both write through it.
type AttendanceRecord struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID        `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_record_day"`
	RecordDate       time.Time        `gorm:"column:record_date;type:date;not null;uniqueIndex:uq_attendance_record_day"`
	PunchInTime      *time.Time       `gorm:"column:punch_in_time"`
	PunchOutTime     *time.Time       `gorm:"column:punch_out_time"`
	PunchInLocation  string           `gorm:"column:punch_in_location;type:varchar(255)"`
	PunchOutLocation string           `gorm:"column:punch_out_location;type:varchar(255)"`
	DeviceRef        string           `gorm:"column:device_ref;type:varchar(100)"`
	AttendanceStatus string           `gorm:"column:attendance_status;type:varchar(20);not null"`
	ExceptionType    *string          `gorm:"column:exception_type;type:varchar(20)"`
	WorkHours        decimal.Decimal  `gorm:"column:work_hours;type:numeric(6,2);not null;default:0"`
	OvertimeHours    decimal.Decimal  `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	OvertimeRate     *decimal.Decimal `gorm:"column:overtime_rate;type:numeric(4,2)"`
	Processed        bool             `gorm:"column:processed;not null;default:false"`
	ProcessedBy      *uuid.UUID       `gorm:"column:processed_by;type:uuid"`
	ProcessedTime    *time.Time       `gorm:"column:processed_time"`
	Remark           string           `gorm:"column:remark;type:varchar(255)"`
	CreatedAt        time.Time        `gorm:"column:created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"column:deleted_at;index"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// HasException reports whether the record carries any exception marker.
func (r AttendanceRecord) HasException() bool {
	return r.ExceptionType != nil && *r.ExceptionType != ""
}
