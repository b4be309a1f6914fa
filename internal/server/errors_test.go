package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/scrape"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", &access.UnauthenticatedError{}, http.StatusUnauthorized},
		{"not found", &access.NotFoundError{Resource: "team", ID: uuid.New()}, http.StatusNotFound},
		{"forbidden", &access.ForbiddenError{Resource: "team", ID: uuid.New()}, http.StatusForbidden},
		{"scrape failure", &scrape.Error{URL: "https://example.com", Message: "unreachable"}, http.StatusBadGateway},
		{"email conflict", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"bad credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading project: %w", &access.ForbiddenError{Resource: "project", ID: uuid.New()})
	assert.Equal(t, http.StatusForbidden, HTTPStatus(wrapped))

	wrapped = fmt.Errorf("gateway: %w", &scrape.Error{URL: "https://example.com", Message: "timeout"})
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(wrapped))
}
