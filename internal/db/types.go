package db

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a remediation task.
type TaskStatus string

// Task statuses. A task is "open" while its status is neither completed nor
// cancelled.
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is a recognized task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Open reports whether a task in this status still needs work.
func (s TaskStatus) Open() bool {
	return s != TaskStatusCompleted && s != TaskStatusCancelled
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

// Task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is a recognized task priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// User represents a user account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Team is owned by exactly one user
type Team struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Project belongs to a team and groups tracked URLs and tasks
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TeamID    uuid.UUID `json:"team_id" db:"team_id"`
	Name      string    `json:"name" db:"name"`
	Domain    string    `json:"domain" db:"domain"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProjectURL is a tracked URL registered for recurring content audits
type ProjectURL struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProjectID       uuid.UUID `json:"project_id" db:"project_id"`
	URL             string    `json:"url" db:"url"`
	Title           *string   `json:"title,omitempty" db:"title"`
	MetaDescription *string   `json:"meta_description,omitempty" db:"meta_description"`
	RenderJS        bool      `json:"render_js" db:"render_js"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Audit is one scored snapshot of a tracked URL at a point in time
type Audit struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ProjectURLID   uuid.UUID `json:"project_url_id" db:"project_url_id"`
	OverallScore   float64   `json:"overall_score" db:"overall_score"`
	ContentScore   float64   `json:"content_score" db:"content_score"`
	MetaScore      float64   `json:"meta_score" db:"meta_score"`
	OnPageScore    float64   `json:"on_page_score" db:"on_page_score"`
	TechnicalScore float64   `json:"technical_score" db:"technical_score"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Task is a remediation task scoped to a project
type Task struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	ProjectID   uuid.UUID    `json:"project_id" db:"project_id"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description,omitempty" db:"description"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	Status      TaskStatus   `json:"status" db:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty" db:"due_date"`
	AssignedTo  *uuid.UUID   `json:"assigned_to,omitempty" db:"assigned_to"`
	AuditID     *uuid.UUID   `json:"audit_id,omitempty" db:"audit_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
