//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Project is a tenant-like scoping unit. Almost all domain data the console
// manages is namespaced by the active project's id.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Audit
}

// CreateProjectRequest represents parameters to create a Project.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// Validate checks the request for required fields.
func (r *CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("project name is required")
	}
	return nil
}

// UpdateProjectRequest represents parameters to update a Project.
type UpdateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// Audit carries the creation/update stamps the GoIAM API attaches to
// every entity it returns.
type Audit struct {
	CreatedAt string `json:"created_at,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}
