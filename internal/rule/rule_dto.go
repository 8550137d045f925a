package rule

type CreateRuleRequest struct {
	RuleName       string   `json:"rule_name" binding:"required,max=100"`
	Scope          string   `json:"scope" binding:"required,oneof=INDIVIDUAL DEPARTMENT GLOBAL"`
	EmployeeID     *string  `json:"employee_id" binding:"omitempty,uuid"`
	DepartmentID   *string  `json:"department_id" binding:"omitempty,uuid"`
	Priority       int      `json:"priority"`
	Enabled        *bool    `json:"enabled"`
	WorkStartTime  string   `json:"work_start_time" binding:"required"`
	WorkEndTime    string   `json:"work_end_time" binding:"required"`
	BreakStartTime *string  `json:"break_start_time"`
	BreakEndTime   *string  `json:"break_end_time"`
	HolidayRules   []string `json:"holiday_rules" binding:"omitempty,dive,datetime=2006-01-02"`
	WorkSchedule   []int    `json:"work_schedule" binding:"omitempty,dive,min=1,max=7"`
	EffectiveFrom  *string  `json:"effective_from" binding:"omitempty,datetime=2006-01-02"`
	EffectiveTo    *string  `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateRuleRequest struct {
	RuleName       string   `json:"rule_name" binding:"required,max=100"`
	Priority       int      `json:"priority"`
	Enabled        *bool    `json:"enabled"`
	WorkStartTime  string   `json:"work_start_time" binding:"required"`
	WorkEndTime    string   `json:"work_end_time" binding:"required"`
	BreakStartTime *string  `json:"break_start_time"`
	BreakEndTime   *string  `json:"break_end_time"`
	HolidayRules   []string `json:"holiday_rules" binding:"omitempty,dive,datetime=2006-01-02"`
	WorkSchedule   []int    `json:"work_schedule" binding:"omitempty,dive,min=1,max=7"`
	EffectiveFrom  *string  `json:"effective_from" binding:"omitempty,datetime=2006-01-02"`
	EffectiveTo    *string  `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
}

type RuleResponse struct {
	ID             string   `json:"id"`
	RuleName       string   `json:"rule_name"`
	Scope          string   `json:"scope"`
	EmployeeID     *string  `json:"employee_id,omitempty"`
	DepartmentID   *string  `json:"department_id,omitempty"`
	Priority       int      `json:"priority"`
	Enabled        bool     `json:"enabled"`
	WorkStartTime  string   `json:"work_start_time"`
	WorkEndTime    string   `json:"work_end_time"`
	BreakStartTime *string  `json:"break_start_time,omitempty"`
	BreakEndTime   *string  `json:"break_end_time,omitempty"`
	HolidayRules   []string `json:"holiday_rules"`
	WorkSchedule   []int    `json:"work_schedule"`
	EffectiveFrom  *string  `json:"effective_from,omitempty"`
	EffectiveTo    *string  `json:"effective_to,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// ResolvedRuleResponse is what the resolution endpoint returns: the winning
// rule plus whether it is the built-in default.
type ResolvedRuleResponse struct {
	Rule      RuleResponse `json:"rule"`
	IsDefault bool         `json:"is_default"`
}
