package hierarchyerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrHierarchyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hierarchy not found",
		http.StatusNotFound,
	)
	ErrHierarchyNameTaken = apperror.New(
		apperror.CodeConflict,
		"A hierarchy with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidHierarchyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hierarchy ID",
		http.StatusBadRequest,
	)
)
