// Package errors provides structured error handling with machine-readable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Signup conflicts
	CodeUsernameTaken Code = "USERNAME_TAKEN"
	CodeEmailTaken    Code = "EMAIL_TAKEN"

	// Authentication errors
	CodeCredentialsInvalid Code = "CREDENTIALS_INVALID"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeUserNotFound       Code = "USER_NOT_FOUND"

	// Authorization errors
	CodeTaskNotOwned Code = "TASK_NOT_OWNED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument, CodeUsernameTaken, CodeEmailTaken:
		return http.StatusBadRequest
	case CodeCredentialsInvalid, CodeTokenInvalid, CodeTokenExpired, CodeUserNotFound:
		return http.StatusUnauthorized
	case CodeTaskNotOwned:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
