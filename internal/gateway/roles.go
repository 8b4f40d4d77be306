package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goiam/console/internal/domain/model"
)

// ListRoles lists roles under the active project with search and paging.
func (c *Client) ListRoles(ctx context.Context, auth Auth, q PageQuery) (*model.RolePage, error) {
	var page model.RolePage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/role/v1/",
		query:  pageValues(q),
		auth:   auth,
		scoped: true,
		out:    &page,
	})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return &page, nil
}

// CreateRole creates a role under the active project.
func (c *Client) CreateRole(ctx context.Context, auth Auth, role *model.Role) (*model.Role, error) {
	var created model.Role
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/role/v1/",
		body:   role,
		auth:   auth,
		scoped: true,
		out:    &created,
	})
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return &created, nil
}

// UpdateRole updates a role by id.
func (c *Client) UpdateRole(ctx context.Context, auth Auth, role *model.Role) (*model.Role, error) {
	var updated model.Role
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/role/v1/" + url.PathEscape(role.ID),
		body:   role,
		auth:   auth,
		scoped: true,
		out:    &updated,
	})
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return &updated, nil
}
