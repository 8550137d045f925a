package events

import "time"

const AttendanceRecordedTopic = "wf.attendance.recorded.v1"

type AttendanceRecordedEvent struct {
	EventType     string    `json:"event_type"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	ExceptionType string    `json:"exception_type,omitempty"`
	WorkHours     string    `json:"work_hours"`
	OvertimeHours string    `json:"overtime_hours"`
	OccurredAt    time.Time `json:"occurred_at"`
}
