package leavetypeerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"A leave type with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type ID",
		http.StatusBadRequest,
	)
	ErrInvalidFlowMode = apperror.New(
		apperror.CodeInvalidInput,
		"Flow mode must be SERIAL or PARALLEL",
		http.StatusBadRequest,
	)
)
