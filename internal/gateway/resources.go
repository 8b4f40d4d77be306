package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goiam/console/internal/domain/model"
)

// SearchResources searches resources by name, description, and key. The
// search endpoint is not project-scoped and takes no credentials.
func (c *Client) SearchResources(ctx context.Context, q PageQuery) (*model.ResourcePage, error) {
	search := strings.TrimSpace(q.Search)
	v := url.Values{}
	v.Set("name", search)
	v.Set("description", search)
	v.Set("key", search)
	v.Set("skip", strconv.Itoa(q.Skip))
	v.Set("limit", strconv.Itoa(q.Limit))

	var page model.ResourcePage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/resource/v1/search",
		query:  v,
		out:    &page,
	})
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	return &page, nil
}

// CreateResource creates a resource under the active project.
func (c *Client) CreateResource(ctx context.Context, auth Auth, resource *model.Resource) (*model.Resource, error) {
	var created model.Resource
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/resource/v1/",
		body:   resource,
		auth:   auth,
		scoped: true,
		out:    &created,
	})
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return &created, nil
}

// UpdateResource updates a resource by id.
func (c *Client) UpdateResource(ctx context.Context, auth Auth, resource *model.Resource) (*model.Resource, error) {
	var updated model.Resource
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/resource/v1/" + url.PathEscape(resource.ID),
		body:   resource,
		auth:   auth,
		scoped: true,
		out:    &updated,
	})
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return &updated, nil
}
