// Package server provides the HTTP REST API for seopilot.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/scrape"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// HTTPStatus returns the HTTP status code for an error. Authorization
// failures map to their gate status; everything unrecognized is a 500.
func HTTPStatus(err error) int {
	var (
		unauth    *access.UnauthenticatedError
		notFound  *access.NotFoundError
		forbidden *access.ForbiddenError
		scrapeErr *scrape.Error
	)
	switch {
	case errors.As(err, &unauth):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &scrapeErr):
		return http.StatusBadGateway
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
