package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultTaskPageSize is the number of tasks returned per page when the
// caller does not override it.
const DefaultTaskPageSize = 15

// TaskFilters narrows a task listing. Nil fields mean no constraint on that
// field.
type TaskFilters struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	AssignedTo *uuid.UUID
}

// ListTasksOptions configures task listing pagination and filtering.
type ListTasksOptions struct {
	Filters  TaskFilters
	Page     int // 1-indexed
	PageSize int // defaults to DefaultTaskPageSize
}

// TaskPage is a stable list+metadata contract for paginated task listings.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// EmptyTaskPage returns the zero-count page used when no project is selected
// or when a listing failure resets the list state.
func EmptyTaskPage(page, pageSize int) *TaskPage {
	if pageSize <= 0 {
		pageSize = DefaultTaskPageSize
	}
	if page < 1 {
		page = 1
	}
	return &TaskPage{Tasks: []Task{}, Total: 0, TotalPages: 0, Page: page, PageSize: pageSize}
}

// Tasks returns the generic repository for the tasks table
func (db *DB) Tasks() *Collection[Task] {
	return NewCollection[Task](db, "tasks")
}

// ListTasks retrieves one page of tasks for a project, newest first. A nil
// projectID means no project is selected yet; it yields an empty page without
// touching the database, which is distinct from a project with zero tasks.
func (db *DB) ListTasks(ctx context.Context, projectID *uuid.UUID, opts ListTasksOptions) (*TaskPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultTaskPageSize
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	if projectID == nil {
		return EmptyTaskPage(page, pageSize), nil
	}

	whereClause, args := buildTaskConditions(*projectID, opts.Filters)

	countQuery := "SELECT COUNT(*) FROM tasks " + whereClause
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(
		`SELECT * FROM tasks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[Task])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}

	return &TaskPage{
		Tasks:      tasks,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// buildTaskConditions assembles the WHERE clause for a task listing.
func buildTaskConditions(projectID uuid.UUID, filters TaskFilters) (string, []any) {
	conditions := []string{"project_id = $1"}
	args := []any{projectID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Priority != nil {
		args = append(args, *filters.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filters.AssignedTo != nil {
		args = append(args, *filters.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// totalPages computes the page count for a total row count.
func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// CountOpenTasks counts tasks in a project whose status is neither completed
// nor cancelled.
func (db *DB) CountOpenTasks(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE project_id = $1 AND status NOT IN ('completed', 'cancelled')`,
		projectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tasks: %w", err)
	}
	return count, nil
}

// CountPendingTasks counts tasks in a project assigned to a user with status
// todo or in_progress.
func (db *DB) CountPendingTasks(ctx context.Context, projectID, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE project_id = $1 AND assigned_to = $2 AND status IN ('todo', 'in_progress')`,
		projectID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	return count, nil
}
