package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goiam/console/internal/domain/model"
)

// ListPolicies lists policy definitions under the active project.
func (c *Client) ListPolicies(ctx context.Context, auth Auth, skip, limit int) (*model.PolicyPage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var page model.PolicyPage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/policy/v1/",
		query:  q,
		auth:   auth,
		scoped: true,
		out:    &page,
	})
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	return &page, nil
}
