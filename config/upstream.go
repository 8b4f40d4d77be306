package config

import (
	"strings"
	"time"
)

// UpstreamConfig describes the GoIAM backend API the console proxies to.
type UpstreamConfig struct {
	// APIURL is the base URL of the GoIAM REST API (no trailing slash).
	APIURL string `env:"API_URL" envDefault:"http://localhost:3000"`

	// LoginURL is the browser-facing login page of the GoIAM authorization
	// server. Unauthenticated operators are redirected here; the server
	// redirects back to the console's /verify route with a one-time code.
	LoginURL string `env:"LOGIN_URL" envDefault:"http://localhost:3000/login"`

	// Timeout bounds every upstream API call.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// VerifyProviderIssuers enables OIDC discovery validation of auth
	// provider issuers before create/update calls are forwarded upstream.
	VerifyProviderIssuers bool `env:"VERIFY_PROVIDER_ISSUERS" envDefault:"true"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.APIURL = strings.TrimRight(strings.TrimSpace(u.APIURL), "/")
	u.LoginURL = strings.TrimSpace(u.LoginURL)
	if u.Timeout <= 0 {
		u.Timeout = 30 * time.Second
	}
}
