package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goiam/console/internal/domain/model"
)

// Project management is not project-scoped: these calls carry the bearer
// token but no scope header.

// ListProjects lists the projects the session can access, filtered by an
// optional search string matched against name and description.
func (c *Client) ListProjects(ctx context.Context, token, search string) ([]model.Project, error) {
	q := url.Values{}
	search = strings.TrimSpace(search)
	q.Set("name", search)
	q.Set("description", search)

	var projects []model.Project
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/project/v1",
		query:  q,
		auth:   Auth{Token: token},
		out:    &projects,
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error) {
	var project model.Project
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/project/v1/",
		body:   req,
		auth:   Auth{Token: token},
		out:    &project,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// UpdateProject updates a project by id.
func (c *Client) UpdateProject(ctx context.Context, token, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	var project model.Project
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/project/v1/" + url.PathEscape(id),
		body:   req,
		auth:   Auth{Token: token},
		out:    &project,
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &project, nil
}
