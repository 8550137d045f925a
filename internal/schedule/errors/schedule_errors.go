package scheduleerrors

import (
	"go-workforce/internal/shared/apperror"
	"net/http"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Schedule entry not found",
		http.StatusNotFound,
	)
	ErrScheduleConflict = apperror.New(
		apperror.CodeConflict,
		"Employee already has a schedule entry for this date",
		http.StatusConflict,
	)
	ErrInvalidScheduleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid schedule ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeRate = apperror.New(
		apperror.CodeInvalidInput,
		"Overtime rate must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleType = apperror.New(
		apperror.CodeInvalidInput,
		"Schedule type must be NORMAL, OVERTIME, REST, HOLIDAY, or LEAVE",
		http.StatusBadRequest,
	)
	ErrInvalidShiftRef = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid shift reference",
		http.StatusBadRequest,
	)
	ErrInvalidWorkWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Work start time must be before work end time",
		http.StatusBadRequest,
	)
	ErrInvalidBreakWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Break window must be ordered and inside the work window",
		http.StatusBadRequest,
	)
)
