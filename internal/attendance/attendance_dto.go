package attendance

type SubmitPunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Direction  string `json:"direction" binding:"required,oneof=IN OUT"`
	PunchTime  string `json:"punch_time" binding:"required"`
	Location   string `json:"location" binding:"max=255"`
	DeviceRef  string `json:"device_ref" binding:"max=100"`
}

type MakeupPunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Remark     string `json:"remark" binding:"max=255"`
}

type RecalculateRangeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type BackfillRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type BackfillResponse struct {
	Created int `json:"created"`
}

type RecalculateResponse struct {
	Updated int `json:"updated"`
}

type DayStatusResponse struct {
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	IsHoliday    bool   `json:"is_holiday"`
	IsWorkingDay bool   `json:"is_working_day"`
}

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	RecordDate       string  `json:"record_date"`
	PunchInTime      *string `json:"punch_in_time,omitempty"`
	PunchOutTime     *string `json:"punch_out_time,omitempty"`
	AttendanceStatus string  `json:"attendance_status"`
	ExceptionType    *string `json:"exception_type,omitempty"`
	WorkHours        string  `json:"work_hours"`
	OvertimeHours    string  `json:"overtime_hours"`
	OvertimeRate     *string `json:"overtime_rate,omitempty"`
	Processed        bool    `json:"processed"`
	Remark           string  `json:"remark,omitempty"`
}
