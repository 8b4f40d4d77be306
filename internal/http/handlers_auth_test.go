package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/gateway"
	"github.com/goiam/console/internal/mocks"
)

func newAuthHandlers(svc SessionServiceInterface) *AuthHandlers {
	return &AuthHandlers{
		Svc: svc,
		Login: LoginConfig{
			LoginURL: "https://iam.example.com/login",
			BaseURL:  "https://console.example.com",
			Scopes:   []string{"openid", "profile", "email"},
		},
	}
}

func TestBeginLoginRedirectsToLoginPage(t *testing.T) {
	svc := &mockSessionService{
		bootstrapFunc: func(_ context.Context, sid string, force bool) (session.Snapshot, error) {
			assert.False(t, force)
			return session.Snapshot{ID: sid, ClientID: "c-1"}, nil
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/login", nil)
	h.BeginLogin(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "iam.example.com", loc.Host)
	assert.Equal(t, "c-1", loc.Query().Get("client_id"))
	assert.Equal(t, "https://console.example.com/verify", loc.Query().Get("redirect_uri"))
	assert.NotEmpty(t, loc.Query().Get("state"))

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == stateCookieName {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.Equal(t, loc.Query().Get("state"), stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
}

func TestBeginLoginRecordsAudit(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockAuditRecorder(ctrl)
	rec.EXPECT().
		Record(gomock.Any(), gomock.Cond(func(req *model.RecordAuditRequest) bool {
			return req.Action == model.AuditActionLoginBegin && req.SessionID == "sid-1"
		})).
		Return(nil)

	svc := &mockSessionService{
		bootstrapFunc: func(_ context.Context, sid string, _ bool) (session.Snapshot, error) {
			return session.Snapshot{ID: sid, ClientID: "c-1"}, nil
		},
	}
	h := newAuthHandlers(svc)
	h.Audit = rec

	w, r := newTestRequest(http.MethodGet, "/login", nil)
	h.BeginLogin(w, r)

	require.Equal(t, http.StatusFound, w.Code)
}

func TestBeginLoginWithoutClientRedirectsHome(t *testing.T) {
	svc := &mockSessionService{
		bootstrapFunc: func(_ context.Context, sid string, _ bool) (session.Snapshot, error) {
			return session.Snapshot{ID: sid}, nil
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/login", nil)
	h.BeginLogin(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestVerifySuccessRedirectsHome(t *testing.T) {
	var gotCode string
	svc := &mockSessionService{
		verifyFunc: func(_ context.Context, _, code string) (session.Snapshot, error) {
			gotCode = code
			return session.Snapshot{Token: "T", Verified: true}, nil
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/verify?code=one-time", nil)
	h.Verify(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "one-time", gotCode)
}

func TestVerifyFailureRedirectsToLoginWithError(t *testing.T) {
	svc := &mockSessionService{
		verifyFunc: func(context.Context, string, string) (session.Snapshot, error) {
			return session.Snapshot{}, &gateway.APIError{Message: "code expired", Status: 400}
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/verify?code=stale", nil)
	h.Verify(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?error=verification_failed", w.Header().Get("Location"))
}

func TestVerifyMissingCode(t *testing.T) {
	h := newAuthHandlers(&mockSessionService{})

	w, r := newTestRequest(http.MethodGet, "/verify", nil)
	h.Verify(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?error=missing_code", w.Header().Get("Location"))
}

func TestVerifyStateMismatch(t *testing.T) {
	h := newAuthHandlers(&mockSessionService{
		verifyFunc: func(context.Context, string, string) (session.Snapshot, error) {
			t.Fatal("verify must not run on state mismatch")
			return session.Snapshot{}, nil
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/verify?code=x&state=echoed", nil)
	r.AddCookie(&http.Cookie{Name: stateCookieName, Value: "different"})
	w := httptest.NewRecorder()
	h.Verify(w, withTestSession(r, "sid-1", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?error=invalid_state", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	var loggedOut string
	svc := &mockSessionService{
		logoutFunc: func(_ context.Context, sid string) error {
			loggedOut = sid
			return nil
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sid-1", loggedOut)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect_to"])
}

func TestLogoutServiceFailureStillResponds(t *testing.T) {
	svc := &mockSessionService{
		logoutFunc: func(context.Context, string) error {
			return errors.New("redis down")
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMeReturnsSessionView(t *testing.T) {
	user := &model.User{ID: "u-1", Email: "op@example.com"}
	svc := &mockSessionService{
		bootstrapFunc: func(_ context.Context, sid string, force bool) (session.Snapshot, error) {
			assert.True(t, force)
			return session.Snapshot{
				ID:              sid,
				Token:           "T",
				ClientID:        "c-1",
				User:            user,
				Verified:        true,
				LoadedState:     true,
				SelectedProject: &model.Project{ID: "p-1"},
			}, nil
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/auth/me?force=true", nil)
	h.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var view snapshotView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.ClientAvailable)
	assert.True(t, view.Verified)
	assert.True(t, view.LoadedState)
	assert.Equal(t, "p-1", view.ActiveProjectID)
	require.NotNil(t, view.User)
	assert.Equal(t, "op@example.com", view.User.Email)
}

func TestMeUnauthorizedCarriesRedirect(t *testing.T) {
	svc := &mockSessionService{
		bootstrapFunc: func(context.Context, string, bool) (session.Snapshot, error) {
			return session.Snapshot{}, gateway.ErrUnauthorized
		},
	}
	h := newAuthHandlers(svc)

	w, r := newTestRequest(http.MethodGet, "/auth/me", nil)
	h.Me(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect_to"])
	assert.Equal(t, false, body["loaded_state"])
}
