package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/seopilot/internal/types"
)

// handleListProjects lists the projects of a team
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
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

	projects, err := s.db.ListProjectsByTeam(r.Context(), teamID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"projects": projects,
		"count":    len(projects),
	})
}

// handleCreateProject creates a project within a team
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
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

	var req types.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	project, err := s.db.Projects().Create(r.Context(), map[string]any{
		"team_id": teamID,
		"name":    req.Name,
		"domain":  req.Domain,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, project)
}

// handleGetProject retrieves a project
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
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

	project, err := s.db.Projects().Get(r.Context(), projectID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, project)
}

// handleUpdateProject updates project fields
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
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

	var req types.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	project, err := s.db.Projects().Update(r.Context(), projectID, map[string]any{
		"name":   req.Name,
		"domain": req.Domain,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, project)
}

// handleDeleteProject deletes a project
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
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

	if err := s.db.Projects().Delete(r.Context(), projectID); err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
