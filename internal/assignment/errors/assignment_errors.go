package assignmenterrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager assignment not found",
		http.StatusNotFound,
	)
	ErrAssignmentExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active manager assignment in this hierarchy",
		http.StatusConflict,
	)
	ErrDelegationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager delegation not found",
		http.StatusNotFound,
	)
	ErrDelegationOverlap = apperror.New(
		apperror.CodeConflict,
		"An active delegation for this manager already covers part of the requested interval",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrSelfDelegation = apperror.New(
		apperror.CodeInvalidInput,
		"A manager cannot delegate to themselves",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid identifier",
		http.StatusBadRequest,
	)
)
