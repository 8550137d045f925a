package attendanceerrors

import (
	"go-workforce/internal/shared/apperror"
	"net/http"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrRecordConflict = apperror.New(
		apperror.CodeConflict,
		"Attendance record already exists for this date",
		http.StatusConflict,
	)
	ErrInvalidDirection = apperror.New(
		apperror.CodeInvalidInput,
		"Punch direction must be IN or OUT",
		http.StatusBadRequest,
	)
	ErrPunchOutsideWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Punch time must fall between 04:00 and midnight",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must not be after end date",
		http.StatusBadRequest,
	)
)
