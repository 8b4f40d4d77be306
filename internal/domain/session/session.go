package session

// Package session contains domain-level types for the console session
// lifecycle. It is pure and free of framework/adapter concerns.

import (
	"time"

	"github.com/goiam/console/internal/domain/model"
)

// StalenessWindow is the interval during which a repeated identity bootstrap
// is served from the persisted snapshot instead of the network.
const StalenessWindow = 5 * time.Minute

// Snapshot is the per-browser session record the console persists. It is
// the durable backing for the authentication state: read at request time to
// seed in-memory state, written by every state-changing operation.
//
// SelectedProject deliberately survives Reset: logging out does not forget
// which project the operator was working in.
type Snapshot struct {
	ID              string         `json:"id"`
	Token           string         `json:"access_token"`
	ClientID        string         `json:"client_id"`
	User            *model.User    `json:"user,omitempty"`
	LastRefreshedAt time.Time      `json:"last_refreshed_at"`
	LoadedState     bool           `json:"loaded_state"`
	Verified        bool           `json:"verified"`
	SelectedProject *model.Project `json:"selected_project,omitempty"`
	// DefaultProject is the non-authoritative fallback scope, refreshed from
	// the first entry of every project list fetch while nothing is selected.
	DefaultProject *model.Project `json:"default_project,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
}

// ClientAvailable reports whether the deployment has a GoIAM client
// configured for this console.
func (s *Snapshot) ClientAvailable() bool { return s.ClientID != "" }

// Fresh reports whether the snapshot was refreshed within the staleness
// window ending at now. A fresh snapshot serves bootstrap from cache.
func (s *Snapshot) Fresh(now time.Time) bool {
	if s.LastRefreshedAt.IsZero() {
		return false
	}
	return now.Sub(s.LastRefreshedAt) < StalenessWindow
}

// ActiveProjectID returns the id every project-scoped upstream call is
// annotated with: the explicitly selected project, else the default, else
// the empty string (the scope header is sent empty, never omitted).
func (s *Snapshot) ActiveProjectID() string {
	if s.SelectedProject != nil {
		return s.SelectedProject.ID
	}
	if s.DefaultProject != nil {
		return s.DefaultProject.ID
	}
	return ""
}

// Reset clears the authenticated state in place. The staleness stamp is
// backdated by a full window so the next bootstrap is a real network call
// rather than a cache hit. Calling Reset twice leaves the snapshot
// unchanged after the first call.
func (s *Snapshot) Reset(now time.Time) {
	s.LastRefreshedAt = now.Add(-StalenessWindow)
	s.Token = ""
	s.ClientID = ""
	s.User = nil
	s.LoadedState = false
	s.Verified = false
}

// Actor returns a display identity for audit records, falling back to the
// session id while unauthenticated.
func (s *Snapshot) Actor() string {
	if s.User != nil && s.User.Email != "" {
		return s.User.Email
	}
	return s.ID
}
