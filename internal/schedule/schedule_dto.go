package schedule

type CreateScheduleRequest struct {
	EmployeeID     string   `json:"employee_id" binding:"required,uuid"`
	ScheduleDate   string   `json:"schedule_date" binding:"required,datetime=2006-01-02"`
	ScheduleType   string   `json:"schedule_type" binding:"required,oneof=NORMAL OVERTIME REST HOLIDAY LEAVE"`
	IsHoliday      bool     `json:"is_holiday"`
	OvertimeRate   *string  `json:"overtime_rate"`
	ShiftID        *string  `json:"shift_id" binding:"omitempty,uuid"`
	WorkStartTime  string   `json:"work_start_time" binding:"required"`
	WorkEndTime    string   `json:"work_end_time" binding:"required"`
	BreakStartTime *string  `json:"break_start_time"`
	BreakEndTime   *string  `json:"break_end_time"`
	Remark         string   `json:"remark" binding:"max=255"`
}

type UpdateScheduleRequest struct {
	ScheduleType   string  `json:"schedule_type" binding:"required,oneof=NORMAL OVERTIME REST HOLIDAY LEAVE"`
	IsHoliday      bool    `json:"is_holiday"`
	OvertimeRate   *string `json:"overtime_rate"`
	ShiftID        *string `json:"shift_id" binding:"omitempty,uuid"`
	WorkStartTime  string  `json:"work_start_time" binding:"required"`
	WorkEndTime    string  `json:"work_end_time" binding:"required"`
	BreakStartTime *string `json:"break_start_time"`
	BreakEndTime   *string `json:"break_end_time"`
	Remark         string  `json:"remark" binding:"max=255"`
}

type ScheduleResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	ScheduleDate   string  `json:"schedule_date"`
	ScheduleType   string  `json:"schedule_type"`
	IsHoliday      bool    `json:"is_holiday"`
	OvertimeRate   *string `json:"overtime_rate,omitempty"`
	ShiftID        *string `json:"shift_id,omitempty"`
	WorkStartTime  string  `json:"work_start_time"`
	WorkEndTime    string  `json:"work_end_time"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
	Remark         string  `json:"remark,omitempty"`
}
