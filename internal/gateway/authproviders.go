package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goiam/console/internal/domain/model"
)

// ListAuthProviders lists identity providers under the active project.
func (c *Client) ListAuthProviders(ctx context.Context, auth Auth) ([]model.AuthProvider, error) {
	var providers []model.AuthProvider
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/authprovider/v1",
		auth:   auth,
		scoped: true,
		out:    &providers,
	})
	if err != nil {
		return nil, fmt.Errorf("list auth providers: %w", err)
	}
	return providers, nil
}

// CreateAuthProvider configures an identity provider under the active project.
func (c *Client) CreateAuthProvider(ctx context.Context, auth Auth, provider *model.AuthProvider) (*model.AuthProvider, error) {
	var created model.AuthProvider
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/authprovider/v1/",
		body:   provider,
		auth:   auth,
		scoped: true,
		out:    &created,
	})
	if err != nil {
		return nil, fmt.Errorf("create auth provider: %w", err)
	}
	return &created, nil
}

// UpdateAuthProvider updates an identity provider by id.
func (c *Client) UpdateAuthProvider(ctx context.Context, auth Auth, provider *model.AuthProvider) (*model.AuthProvider, error) {
	var updated model.AuthProvider
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/authprovider/v1/" + url.PathEscape(provider.ID),
		body:   provider,
		auth:   auth,
		scoped: true,
		out:    &updated,
	})
	if err != nil {
		return nil, fmt.Errorf("update auth provider: %w", err)
	}
	return &updated, nil
}
