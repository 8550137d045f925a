package rbacerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)
	ErrRoleNameTaken = apperror.New(
		apperror.CodeConflict,
		"Role name already exists",
		http.StatusConflict,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role ID",
		http.StatusBadRequest,
	)
	ErrInvalidPermissionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid permission ID",
		http.StatusBadRequest,
	)
	ErrPermissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Permission not found",
		http.StatusNotFound,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
)
