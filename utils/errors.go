package utils

import "net/http"

// CustomError carries the HTTP status a failure should be reported with.
type CustomError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewCustomError builds a CustomError.
func NewCustomError(statusCode int, message string) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message}
}

func BadRequest(message string) *CustomError {
	return NewCustomError(http.StatusBadRequest, message)
}
