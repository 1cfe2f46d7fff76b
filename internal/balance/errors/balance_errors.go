package balanceerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance not found",
		http.StatusNotFound,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"A balance for this user and leave type already exists",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodePolicyViolation,
		"Insufficient leave balance for the requested period",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Adjustment quantity must not be zero",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid identifier",
		http.StatusBadRequest,
	)
)
