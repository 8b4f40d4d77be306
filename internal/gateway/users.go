package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goiam/console/internal/domain/model"
)

// ListUsers lists users under the active project with search and paging.
func (c *Client) ListUsers(ctx context.Context, auth Auth, q PageQuery) (*model.UserPage, error) {
	var page model.UserPage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/user/v1/",
		query:  pageValues(q),
		auth:   auth,
		scoped: true,
		out:    &page,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &page, nil
}

// CreateUser registers a user under the active project.
func (c *Client) CreateUser(ctx context.Context, auth Auth, user *model.User) (*model.User, error) {
	var created model.User
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/user/v1/",
		body:   user,
		auth:   auth,
		scoped: true,
		out:    &created,
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &created, nil
}

// UpdateUser updates a user by id.
func (c *Client) UpdateUser(ctx context.Context, auth Auth, user *model.User) (*model.User, error) {
	var updated model.User
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/user/v1/" + url.PathEscape(user.ID),
		body:   user,
		auth:   auth,
		scoped: true,
		out:    &updated,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

// UpdateUserRoles adds and removes roles on a user.
func (c *Client) UpdateUserRoles(ctx context.Context, auth Auth, userID string, req *model.UserRoleUpdate) error {
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/user/v1/" + url.PathEscape(userID) + "/roles",
		body:   req,
		auth:   auth,
		scoped: true,
	})
	if err != nil {
		return fmt.Errorf("update user roles: %w", err)
	}
	return nil
}

// UpdateUserPolicies replaces the policies attached to a user.
func (c *Client) UpdateUserPolicies(ctx context.Context, auth Auth, userID string, req *model.UserPolicyUpdate) error {
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/user/v1/" + url.PathEscape(userID) + "/policies",
		body:   req,
		auth:   auth,
		scoped: true,
	})
	if err != nil {
		return fmt.Errorf("update user policies: %w", err)
	}
	return nil
}

// TransferOwnership moves everything owned by one user to another.
func (c *Client) TransferOwnership(ctx context.Context, auth Auth, oldID, newOwnerID string) error {
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/user/v1/" + url.PathEscape(oldID) + "/transfer-ownership/" + url.PathEscape(newOwnerID),
		auth:   auth,
		scoped: true,
	})
	if err != nil {
		return fmt.Errorf("transfer ownership: %w", err)
	}
	return nil
}

// CopyResources copies resource assignments from one user to another.
func (c *Client) CopyResources(ctx context.Context, auth Auth, sourceID, targetID string) error {
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/user/v1/" + url.PathEscape(sourceID) + "/copy-resources/" + url.PathEscape(targetID),
		auth:   auth,
		scoped: true,
	})
	if err != nil {
		return fmt.Errorf("copy resources: %w", err)
	}
	return nil
}
