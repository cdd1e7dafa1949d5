package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")

	// Login reports the same message for an unknown email and a wrong
	// password so accounts cannot be enumerated. The unverified case is
	// intentionally explicit.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")

	ErrEmailTaken               = errors.New("user already exists")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrIneligibleOfficer        = errors.New("target user cannot be assigned as an officer")
)

// MapErrorToStatus maps service errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrEmailNotVerified):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidVerificationToken),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrIneligibleOfficer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
