// Package access enforces the project→team→owner ownership chain before
// state-mutating operations reach the store.
package access

import (
	"fmt"

	"github.com/google/uuid"
)

// UnauthenticatedError indicates no acting identity could be resolved.
type UnauthenticatedError struct{}

func (e *UnauthenticatedError) Error() string {
	return "authentication required"
}

// NotFoundError indicates a resource in the ownership chain does not exist.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ForbiddenError indicates the acting identity does not own the team.
type ForbiddenError struct {
	Resource string
	ID       uuid.UUID
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("you do not have access to this %s", e.Resource)
}
