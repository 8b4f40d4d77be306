package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goiam/console/internal/domain/model"
)

// Me fetches the "who am I" dashboard payload. The bearer token is attached
// when present; an anonymous call still succeeds and reports the deployment
// setup state.
func (c *Client) Me(ctx context.Context, token string) (*model.DashboardSelf, error) {
	var self model.DashboardSelf
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/me/v1/dashboard",
		auth:   Auth{Token: token},
		out:    &self,
	})
	if err != nil {
		return nil, err
	}
	return &self, nil
}

// VerifyCode exchanges a one-time authorization code for an access token.
func (c *Client) VerifyCode(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("code", code)

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auth/v1/verify",
		query:  q,
		out:    &payload,
	})
	if err != nil {
		return "", fmt.Errorf("verify code: %w", err)
	}
	return payload.AccessToken, nil
}
