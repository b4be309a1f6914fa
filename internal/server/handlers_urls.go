package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/db"
	"github.com/jonathan/seopilot/internal/scrape"
	"github.com/jonathan/seopilot/internal/types"
)

// handleListURLs lists the tracked URLs of a project
func (s *Server) handleListURLs(w http.ResponseWriter, r *http.Request) {
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

	urls, err := s.db.ListURLsByProject(r.Context(), projectID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"urls":  urls,
		"count": len(urls),
	})
}

// handleCreateURL registers a tracked URL. Page metadata is captured
// best-effort: a dead link still registers, it just has no title yet.
func (s *Server) handleCreateURL(w http.ResponseWriter, r *http.Request) {
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

	var req types.CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	renderJS := true
	if req.RenderJS != nil {
		renderJS = *req.RenderJS
	}

	values := map[string]any{
		"project_id": projectID,
		"url":        req.URL,
		"render_js":  renderJS,
	}

	if content, err := s.scraper.Client().Scrape(r.Context(), req.URL, &scrape.Options{RenderJS: renderJS}); err == nil {
		if meta, err := scrape.ExtractPageMeta(content.HTML); err == nil {
			if meta.Title != "" {
				values["title"] = meta.Title
			}
			if meta.Description != "" {
				values["meta_description"] = meta.Description
			}
		}
	}

	url, err := s.db.ProjectURLs().Create(r.Context(), values)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, url)
}

// handleDeleteURL removes a tracked URL and its audit history (via cascade)
func (s *Server) handleDeleteURL(w http.ResponseWriter, r *http.Request) {
	record, userID, ok := s.resolveURL(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, record.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.ProjectURLs().Delete(r.Context(), record.ID); err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleScrapeURL runs the gateway for a tracked URL and returns the scraped
// content
func (s *Server) handleScrapeURL(w http.ResponseWriter, r *http.Request) {
	record, userID, ok := s.resolveURL(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, record.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	content, err := s.scraper.ScrapeByProjectURLID(r.Context(), record.ID, nil)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, content)
}

// handleURLStatus reports reachability of a tracked URL. Dead links are a
// normal outcome, so this endpoint never fails on scrape errors.
func (s *Server) handleURLStatus(w http.ResponseWriter, r *http.Request) {
	record, userID, ok := s.resolveURL(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, record.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	result := scrape.CheckURLStatus(r.Context(), s.scraper.Client(), record.URL)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAuditHistory returns all audits of a tracked URL, oldest first
func (s *Server) handleAuditHistory(w http.ResponseWriter, r *http.Request) {
	record, userID, ok := s.resolveURL(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, record.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	audits, err := s.db.GetAuditHistory(r.Context(), record.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"audits": audits,
		"count":  len(audits),
	})
}

// handleRecordAudit ingests a scored audit snapshot from the external scorer
func (s *Server) handleRecordAudit(w http.ResponseWriter, r *http.Request) {
	record, userID, ok := s.resolveURL(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, record.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	var req types.RecordAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	audit, err := s.db.CreateAudit(r.Context(), record.ID, db.AuditScores{
		Overall:   req.Overall,
		Content:   req.Content,
		Meta:      req.Meta,
		OnPage:    req.OnPage,
		Technical: req.Technical,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, audit)
}

// handleLatestAudit returns the most recent audit across a project's tracked
// URLs
func (s *Server) handleLatestAudit(w http.ResponseWriter, r *http.Request) {
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

	audit, err := s.db.GetLatestAudit(r.Context(), projectID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if audit == nil {
		s.errorResponse(w, http.StatusNotFound, "No audits recorded for this project")
		return
	}

	s.jsonResponse(w, http.StatusOK, audit)
}

// resolveURL parses the URL ID path segment, resolves the tracked-URL record
// and the acting identity. It writes the error response itself when
// resolution fails.
func (s *Server) resolveURL(w http.ResponseWriter, r *http.Request) (*db.ProjectURL, uuid.UUID, bool) {
	urlID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid URL ID")
		return nil, uuid.Nil, false
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return nil, uuid.Nil, false
	}

	record, err := s.db.GetProjectURL(r.Context(), urlID)
	if err != nil {
		s.handleError(w, err)
		return nil, uuid.Nil, false
	}
	if record == nil {
		s.handleError(w, &access.NotFoundError{Resource: "tracked URL", ID: urlID})
		return nil, uuid.Nil, false
	}
	return record, userID, true
}
