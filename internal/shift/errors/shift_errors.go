package shifterrors

import (
	"go-workforce/internal/shared/apperror"
	"net/http"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)
	ErrShiftCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Shift code already exists",
		http.StatusConflict,
	)
	ErrInvalidShiftID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid shift ID",
		http.StatusBadRequest,
	)
	ErrInvalidShiftWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Shift start time must be before end time",
		http.StatusBadRequest,
	)
)
