package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "unauthorized")
)

// Authentication & Authorization Errors
var (
	ErrMissingSession = errors.New("missing session")
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("expired session")
	ErrAuthFailure    = errors.New("invalid email or password")
)

// Blob Storage Errors
var (
	ErrUploadFailure = errors.New("upload failure")
	ErrBlobNotFound  = errors.New("blob not found")
)

func Malformed(payloadName string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, payloadName+" malformed")
}

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewMissingSessionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingSession,
		Details:    "Missing session cookie",
		Field:      "adminSession",
	}
}

func NewInvalidSessionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidSession,
		Details:    "Session cookie is invalid or expired",
		Field:      "adminSession",
		Cause:      cause,
	}
}

// NewAuthFailureError covers both the unknown-email and wrong-password cases
// with one message, so the response does not reveal which part was wrong.
func NewAuthFailureError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrAuthFailure,
	}
}

func NewValidationError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("invalid field %s", field),
		Details:    reason,
		Field:      field,
	}
}

func NewUploadFailureError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailure,
		Details:    fmt.Sprintf("Blob storage %s failed", operation),
		Cause:      cause,
	}
}

func NewBlobNotFoundError(storageID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrBlobNotFound,
		Details:    fmt.Sprintf("No stored blob for id %s", storageID),
		Field:      "storageId",
	}
}

func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailure)
}

func IsUploadFailure(err error) bool {
	return errors.Is(err, ErrUploadFailure)
}

func IsInvalidSession(err error) bool {
	return errors.Is(err, ErrInvalidSession) || errors.Is(err, ErrMissingSession)
}
