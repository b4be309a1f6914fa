package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/seopilot/internal/stats"
)

// handleProjectStats returns the dashboard counters for a project. When
// aggregation fails the dashboard still renders, so this responds with a
// zeroed snapshot instead of an error status.
func (s *Server) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, projectID); err != nil {
		s.handleError(w, err)
		return
	}

	snapshot, err := s.stats.ProjectStats(r.Context(), projectID, &userID)
	if err != nil {
		var aggErr *stats.AggregationError
		if errors.As(err, &aggErr) {
			log.Printf("stats aggregation failed for project %s: %v", projectID, aggErr.Cause)
			s.jsonResponse(w, http.StatusOK, stats.Zero())
			return
		}
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, snapshot)
}
