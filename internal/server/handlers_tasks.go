package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/db"
	"github.com/jonathan/seopilot/internal/types"
)

// handleListTasks returns one page of a project's tasks, newest first.
// Filters come from query parameters; a listing failure resets the page to an
// empty state rather than leaving the client with stale rows.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
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

	filters, ok := parseTaskFilters(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid task filter")
		return
	}
	opts := db.ListTasksOptions{
		Filters:  filters,
		Page:     parseQueryInt(r, "page", 1, 1),
		PageSize: parseQueryInt(r, "page_size", s.taskPageSize, 1),
	}

	page, err := s.db.ListTasks(r.Context(), &projectID, opts)
	if err != nil {
		if s.verbose {
			log.Printf("[error] %v", err)
		}
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
			"error":       "failed to load tasks",
			"tasks":       []db.Task{},
			"total":       0,
			"total_pages": 0,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, page)
}

// handleCreateTask creates a remediation task within a project
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req types.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = string(db.TaskStatusTodo)
	}

	values := map[string]any{
		"project_id": projectID,
		"title":      req.Title,
		"priority":   req.Priority,
		"status":     status,
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid due_date; expected RFC 3339")
			return
		}
		values["due_date"] = due
	}
	if req.AssignedTo != nil {
		values["assigned_to"] = uuid.MustParse(*req.AssignedTo)
	}
	if req.AuditID != nil {
		values["audit_id"] = uuid.MustParse(*req.AuditID)
	}

	task, err := s.db.Tasks().Create(r.Context(), values)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, task)
}

// handleGetTask retrieves a single task
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, userID, ok := s.resolveTask(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, task.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, task)
}

// handleUpdateTask patches task fields; absent fields are left unchanged
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, userID, ok := s.resolveTask(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, task.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	var req types.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	values := map[string]any{}
	if req.Title != nil {
		values["title"] = *req.Title
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Priority != nil {
		values["priority"] = *req.Priority
	}
	if req.Status != nil {
		values["status"] = *req.Status
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid due_date; expected RFC 3339")
			return
		}
		values["due_date"] = due
	}
	if req.AssignedTo != nil {
		values["assigned_to"] = uuid.MustParse(*req.AssignedTo)
	}
	if len(values) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := s.db.Tasks().Update(r.Context(), task.ID, values)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteTask deletes a task
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, userID, ok := s.resolveTask(w, r)
	if !ok {
		return
	}
	if err := s.guard.RequireProjectAccess(r.Context(), userID, task.ProjectID); err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.Tasks().Delete(r.Context(), task.ID); err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveTask parses the task ID path segment and loads the task together
// with the acting identity. It writes the error response itself when
// resolution fails.
func (s *Server) resolveTask(w http.ResponseWriter, r *http.Request) (*db.Task, uuid.UUID, bool) {
	taskID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid task ID")
		return nil, uuid.Nil, false
	}
	userID, err := identity(r)
	if err != nil {
		s.handleError(w, err)
		return nil, uuid.Nil, false
	}

	task, err := s.db.Tasks().Get(r.Context(), taskID)
	if err != nil {
		s.handleError(w, err)
		return nil, uuid.Nil, false
	}
	if task == nil {
		s.handleError(w, &access.NotFoundError{Resource: "task", ID: taskID})
		return nil, uuid.Nil, false
	}
	return task, userID, true
}

// parseTaskFilters reads status, priority and assigned_to query parameters.
// Unknown values are rejected rather than silently ignored.
func parseTaskFilters(r *http.Request) (db.TaskFilters, bool) {
	var filters db.TaskFilters
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status := db.TaskStatus(raw)
		if !status.Valid() {
			return filters, false
		}
		filters.Status = &status
	}
	if raw := q.Get("priority"); raw != "" {
		priority := db.TaskPriority(raw)
		if !priority.Valid() {
			return filters, false
		}
		filters.Priority = &priority
	}
	if raw := q.Get("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, false
		}
		filters.AssignedTo = &id
	}

	return filters, true
}
