package leaveerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approval not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"Action must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid identifier",
		http.StatusBadRequest,
	)
	ErrHalfDayNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"This leave type does not allow half-day requests",
		http.StatusBadRequest,
	)
	ErrHalfDaySpansDays = apperror.New(
		apperror.CodeInvalidInput,
		"A half-day request must start and end on the same day",
		http.StatusBadRequest,
	)

	ErrBlackoutBlocked = apperror.New(
		apperror.CodePolicyViolation,
		"The requested period falls inside a blocking blackout period",
		http.StatusUnprocessableEntity,
	)
	ErrOverlappingRequest = apperror.New(
		apperror.CodePolicyViolation,
		"An active leave request already covers part of this period",
		http.StatusUnprocessableEntity,
	)
	ErrConsecutiveDaysCap = apperror.New(
		apperror.CodePolicyViolation,
		"The requested period exceeds the maximum consecutive days for this leave type",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodePolicyViolation,
		"Insufficient leave balance for the requested period",
		http.StatusUnprocessableEntity,
	)

	ErrNotEntitled = apperror.New(
		apperror.CodeForbidden,
		"You are not entitled to act on this approval",
		http.StatusForbidden,
	)
	ErrOwnRequest = apperror.New(
		apperror.CodeForbidden,
		"You cannot act on your own leave request",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"This approval has already been decided",
		http.StatusConflict,
	)
	ErrNotPending = apperror.New(
		apperror.CodeConflict,
		"This approval is not awaiting a decision",
		http.StatusConflict,
	)
)
