package types

// CreateTeamRequest creates a team owned by the acting identity.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// UpdateTeamRequest renames a team.
type UpdateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// CreateProjectRequest creates a project within a team.
type CreateProjectRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=120"`
	Domain string `json:"domain" validate:"required,fqdn"`
}

// UpdateProjectRequest updates project fields.
type UpdateProjectRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=120"`
	Domain string `json:"domain" validate:"required,fqdn"`
}

// CreateURLRequest registers a tracked URL for recurring audits.
type CreateURLRequest struct {
	URL      string `json:"url" validate:"required,url"`
	RenderJS *bool  `json:"render_js,omitempty"`
}

// CreateTaskRequest creates a remediation task.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	DueDate     *string `json:"due_date,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
	AuditID     *string `json:"audit_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateTaskRequest patches task fields; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	DueDate     *string `json:"due_date,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
}

// RecordAuditRequest ingests a scored audit produced by the external scorer.
type RecordAuditRequest struct {
	Overall   float64 `json:"overall" validate:"min=0,max=100"`
	Content   float64 `json:"content" validate:"min=0,max=100"`
	Meta      float64 `json:"meta" validate:"min=0,max=100"`
	OnPage    float64 `json:"on_page" validate:"min=0,max=100"`
	Technical float64 `json:"technical" validate:"min=0,max=100"`
}
