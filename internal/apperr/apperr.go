package apperr

import (
	"errors"
	"net/http"
)

// Exception is an error that carries the HTTP status it should surface as.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status for err, defaulting to 500 for errors
// that did not originate in this package.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

var (
	ErrEmployeeNotFound = &Exception{Message: "Employee not found", StatusCode: http.StatusNotFound}
	ErrTaskNotFound     = &Exception{Message: "Task not found", StatusCode: http.StatusNotFound}
	ErrUserNotFound     = &Exception{Message: "User not found.", StatusCode: http.StatusNotFound}

	ErrEmailTaken = &Exception{Message: "User with this email already exists.", StatusCode: http.StatusBadRequest}

	// Same message for unknown email and wrong password so a caller cannot
	// probe which of the two failed.
	ErrInvalidCredentials   = &Exception{Message: "Invalid email or password.", StatusCode: http.StatusUnauthorized}
	ErrWrongCurrentPassword = &Exception{Message: "Current password is incorrect.", StatusCode: http.StatusUnauthorized}
)

// Validation wraps a bad-request message.
func Validation(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusBadRequest}
}

// Service wraps a persistence or downstream failure.
func Service(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusInternalServerError}
}
