package config

import "time"

// AuthConfig groups login redirect and session lifecycle configuration.
type AuthConfig struct {
	// Scope is the OAuth scope string requested on the authorize redirect.
	Scope string `env:"AUTH_SCOPE" envDefault:"openid profile email"`

	// SessionTTL is how long a console session (and its persisted snapshot)
	// lives without a logout. The identity staleness window is a fixed
	// domain constant, not a knob; see internal/domain/session.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 720 * time.Hour
	}
}
