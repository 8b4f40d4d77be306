package oidc

// Package oidc validates operator-supplied OIDC issuer configuration by
// running provider discovery before an auth provider is saved upstream.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// IssuerVerifier checks OIDC issuers via the discovery document.
type IssuerVerifier struct {
	httpClient *http.Client
}

// Config holds configuration for the issuer verifier.
type Config struct {
	Timeout    time.Duration
	HTTPClient *http.Client // Optional, defaults to a client bound by Timeout
}

// NewIssuerVerifier creates an issuer verifier.
func NewIssuerVerifier(cfg Config) *IssuerVerifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &IssuerVerifier{httpClient: hc}
}

// VerifyIssuer fetches the issuer's discovery document and fails when the
// issuer is unreachable, malformed, or self-inconsistent. A misconfigured
// provider is rejected here instead of producing a broken login loop later.
func (v *IssuerVerifier) VerifyIssuer(ctx context.Context, issuer string) error {
	issuer = NormalizeIssuer(issuer)
	if issuer == "" {
		return errors.New("issuer URL is required")
	}
	u, err := url.Parse(issuer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("issuer %q is not an absolute URL", issuer)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	if _, err := gooidc.NewProvider(ctx, issuer); err != nil {
		return fmt.Errorf("oidc discovery for %q: %w", issuer, err)
	}
	return nil
}

// NormalizeIssuer trims whitespace and a trailing discovery suffix so
// operators can paste either the issuer or its discovery URL.
func NormalizeIssuer(issuer string) string {
	issuer = strings.TrimSpace(issuer)
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	return strings.TrimSuffix(issuer, "/")
}
