package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/server/middleware"
)

// middlewareAuth wraps handler funcs with token authentication.
func middlewareAuth(s *Server) func(http.HandlerFunc) http.Handler {
	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	return func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
}

// identity resolves the acting identity from the request context.
func identity(r *http.Request) (uuid.UUID, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil, &access.UnauthenticatedError{}
	}
	return userID, nil
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(key))
	return id, err == nil
}

// parseQueryInt parses an integer query parameter with default and minimum
// values.
func parseQueryInt(r *http.Request, key string, defaultValue, minValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < minValue {
		return defaultValue
	}
	return value
}
