package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/ports"
)

// stateCookieName holds the anti-forgery state for the login round-trip.
const stateCookieName = "login_state"

// SessionServiceInterface defines the session operations the auth handlers use.
type SessionServiceInterface interface {
	Bootstrap(ctx context.Context, sessionID string, force bool) (session.Snapshot, error)
	Verify(ctx context.Context, sessionID, code string) (session.Snapshot, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (session.Snapshot, error)
}

// LoginConfig describes how the login redirect to the GoIAM login page is built.
type LoginConfig struct {
	// LoginURL is the GoIAM hosted login page.
	LoginURL string
	// BaseURL is this console's externally visible base URL.
	BaseURL string
	Scopes  []string
}

// AuthHandlers provides HTTP handlers for the session lifecycle.
type AuthHandlers struct {
	Svc     SessionServiceInterface
	Login   LoginConfig
	Cookies SessionCookieConfig
	Audit   ports.AuditRecorder // Optional
	Logger  *slog.Logger        // Optional
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// BeginLogin redirects the browser to the GoIAM login page.
// GET /login.
func (h *AuthHandlers) BeginLogin(w http.ResponseWriter, r *http.Request) {
	sid := GetSessionIDFromContext(r.Context())

	snap, err := h.Svc.Bootstrap(r.Context(), sid, false)
	if err != nil && !snap.ClientAvailable() {
		h.logger().WarnContext(r.Context(), "bootstrap before login", "error", err)
	}
	if !snap.ClientAvailable() {
		// No client registered yet; the root view surfaces the setup flow.
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Domain:   h.Cookies.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   int((10 * time.Minute).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})

	conf := oauth2.Config{
		ClientID:    snap.ClientID,
		Endpoint:    oauth2.Endpoint{AuthURL: h.Login.LoginURL},
		RedirectURL: h.Login.BaseURL + "/verify",
		Scopes:      h.Login.Scopes,
	}

	h.record(r.Context(), &snap, model.AuditActionLoginBegin)
	http.Redirect(w, r, conf.AuthCodeURL(state), http.StatusFound)
}

// Verify exchanges the one-time code the login page redirected back with.
// GET /verify?code=<code>.
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=missing_code", http.StatusSeeOther)
		return
	}

	// The login page echoes state back only when it was given one; enforce a
	// match when both sides are present.
	if state := r.URL.Query().Get("state"); state != "" {
		if c, err := r.Cookie(stateCookieName); err != nil || c.Value != state {
			http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
			return
		}
	}
	h.clearCookie(w, r, stateCookieName)

	sid := GetSessionIDFromContext(r.Context())
	if _, err := h.Svc.Verify(r.Context(), sid, code); err != nil {
		h.logger().WarnContext(r.Context(), "code verification failed", "error", err)
		http.Redirect(w, r, "/login?error=verification_failed", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session's authenticated state. The session cookie and
// the stored project selection survive.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sid := GetSessionIDFromContext(r.Context())
	if err := h.Svc.Logout(r.Context(), sid); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": "/login",
	})
}

// snapshotView is the session state payload the browser consumes.
type snapshotView struct {
	ClientAvailable bool           `json:"client_available"`
	Verified        bool           `json:"verified"`
	LoadedState     bool           `json:"loaded_state"`
	User            *model.User    `json:"user,omitempty"`
	SelectedProject *model.Project `json:"selected_project,omitempty"`
	DefaultProject  *model.Project `json:"default_project,omitempty"`
	ActiveProjectID string         `json:"active_project_id"`
}

func viewOf(snap session.Snapshot) snapshotView {
	return snapshotView{
		ClientAvailable: snap.ClientAvailable(),
		Verified:        snap.Verified,
		LoadedState:     snap.LoadedState,
		User:            snap.User,
		SelectedProject: snap.SelectedProject,
		DefaultProject:  snap.DefaultProject,
		ActiveProjectID: snap.ActiveProjectID(),
	}
}

// Me bootstraps and returns the session's identity state. A truthy "force"
// parameter bypasses the staleness window.
// GET /auth/me?force=true.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sid := GetSessionIDFromContext(r.Context())
	force := r.URL.Query().Get("force") == "true"

	snap, err := h.Svc.Bootstrap(r.Context(), sid, force)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, viewOf(snap))
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.Cookies.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) record(ctx context.Context, snap *session.Snapshot, action model.AuditAction) {
	if h.Audit == nil {
		return
	}
	req := &model.RecordAuditRequest{
		SessionID: snap.ID,
		Actor:     snap.Actor(),
		Action:    action,
	}
	if err := h.Audit.Record(ctx, req); err != nil {
		h.logger().WarnContext(ctx, "record audit event", "action", string(action), "error", err)
	}
}
