package shift

type CreateShiftRequest struct {
	Code      string `json:"code" binding:"required,max=30"`
	Name      string `json:"name" binding:"required,max=100"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Enabled   *bool  `json:"enabled"`
}

type UpdateShiftRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Enabled   *bool  `json:"enabled"`
}

type ShiftResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Enabled   bool   `json:"enabled"`
}
