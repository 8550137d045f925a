package ruleerrors

import (
	"go-workforce/internal/shared/apperror"
	"net/http"
)

var (
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance rule not found",
		http.StatusNotFound,
	)
	ErrInvalidRuleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid rule ID",
		http.StatusBadRequest,
	)
	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"Rule scope must be INDIVIDUAL, DEPARTMENT, or GLOBAL",
		http.StatusBadRequest,
	)
	ErrScopeTargetMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Individual rules require an employee ID and department rules a department ID",
		http.StatusBadRequest,
	)
	ErrInvalidWorkWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Work start time must be before work end time",
		http.StatusBadRequest,
	)
	ErrInvalidBreakWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Break window must be fully inside the work window",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Effective-from date must not be after effective-to date",
		http.StatusBadRequest,
	)
)
