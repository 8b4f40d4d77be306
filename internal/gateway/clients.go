package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goiam/console/internal/domain/model"
)

// ListClients lists the OAuth clients under the active project.
func (c *Client) ListClients(ctx context.Context, auth Auth) ([]model.Client, error) {
	var clients []model.Client
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/client/v1",
		auth:   auth,
		scoped: true,
		out:    &clients,
	})
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// CreateClient registers an OAuth client under the active project.
func (c *Client) CreateClient(ctx context.Context, auth Auth, client *model.Client) (*model.Client, error) {
	var created model.Client
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/client/v1/",
		body:   client,
		auth:   auth,
		scoped: true,
		out:    &created,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &created, nil
}

// UpdateClient updates a client by id. Regenerating a secret is an update
// with the regenerate flag set by the caller.
func (c *Client) UpdateClient(ctx context.Context, auth Auth, client *model.Client) (*model.Client, error) {
	var updated model.Client
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/client/v1/" + url.PathEscape(client.ID),
		body:   client,
		auth:   auth,
		scoped: true,
		out:    &updated,
	})
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &updated, nil
}
