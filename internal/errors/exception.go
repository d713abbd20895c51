package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
	Fields     map[string]string
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Validation reports malformed or conflicting input.
func Validation(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest}
}

// ValidationFields reports input errors keyed by the offending field.
func ValidationFields(message string, fields map[string]string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest, Fields: fields}
}

func Auth(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusUnauthorized}
}

func Permission(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusNotFound}
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsPermission(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

func IsAuth(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
