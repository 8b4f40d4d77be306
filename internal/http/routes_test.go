package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
)

func newTestRouter(sessions *mockSessionService) http.Handler {
	return NewRouter(RouterServices{
		Sessions: sessions,
		Scope:    &mockScopeService{},
		Entities: &mockEntityService{},
		Lists:    &mockListGateway{},
		Login: LoginConfig{
			LoginURL: "https://iam.example.com/login",
			BaseURL:  "https://console.example.com",
			Scopes:   []string{"openid"},
		},
		Logger: discardLogger(),
	})
}

func TestRouterHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(&mockSessionService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouterMeIssuesSessionCookie(t *testing.T) {
	svc := &mockSessionService{
		bootstrapFunc: func(_ context.Context, sid string, _ bool) (session.Snapshot, error) {
			return session.Snapshot{ID: sid, ClientID: "c-1", LoadedState: true}, nil
		},
	}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var view snapshotView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.ClientAvailable)
	assert.True(t, view.LoadedState)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
}

func TestRouterAPIRunsWithSnapshot(t *testing.T) {
	svc := &mockSessionService{
		currentFunc: func(_ context.Context, sid string) (session.Snapshot, error) {
			return session.Snapshot{
				ID:              sid,
				Token:           "T",
				SelectedProject: &model.Project{ID: "p-1"},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	newTestRouter(svc).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterPanicIsRecovered(t *testing.T) {
	svc := &mockSessionService{
		currentFunc: func(context.Context, string) (session.Snapshot, error) {
			panic("boom")
		},
	}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
