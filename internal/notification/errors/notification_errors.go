package notificationerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification ID",
		http.StatusBadRequest,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"Notification belongs to another user",
		http.StatusForbidden,
	)
)
