package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/seopilot/internal/types"
)

// handleListTeams lists teams owned by the acting identity
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	teams, err := s.db.ListTeamsByOwner(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
	})
}

// handleCreateTeam creates a team owned by the acting identity
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req types.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	team, err := s.db.Teams().Create(r.Context(), map[string]any{
		"name":     req.Name,
		"owner_id": userID,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, team)
}

// handleGetTeam retrieves a team owned by the acting identity
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := s.guard.RequireTeamOwnership(r.Context(), userID, teamID); err != nil {
		s.handleError(w, err)
		return
	}

	team, err := s.db.Teams().Get(r.Context(), teamID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, team)
}

// handleUpdateTeam renames a team
func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := s.guard.RequireTeamOwnership(r.Context(), userID, teamID); err != nil {
		s.handleError(w, err)
		return
	}

	var req types.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	team, err := s.db.Teams().Update(r.Context(), teamID, map[string]any{"name": req.Name})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, team)
}

// handleDeleteTeam deletes a team and everything under it (via cascade)
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := s.guard.RequireTeamOwnership(r.Context(), userID, teamID); err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.Teams().Delete(r.Context(), teamID); err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
