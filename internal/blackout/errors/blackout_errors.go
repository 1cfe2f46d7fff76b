package blackouterrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrBlackoutNotFound = apperror.New(
		apperror.CodeNotFound,
		"Blackout period not found",
		http.StatusNotFound,
	)
	ErrInvalidBlackoutID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid blackout period ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown scope type",
		http.StatusBadRequest,
	)
	ErrInvalidEnforceMode = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown enforce mode",
		http.StatusBadRequest,
	)
	ErrScopeKeyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"This scope type requires a scope key",
		http.StatusBadRequest,
	)
)
