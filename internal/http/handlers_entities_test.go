package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/gateway"
)

func scopedTestSnap() *session.Snapshot {
	return &session.Snapshot{
		ID:              "sid-1",
		Token:           "T",
		SelectedProject: &model.Project{ID: "p-1"},
	}
}

func TestListUsersPassesScopedAuthAndPaging(t *testing.T) {
	lists := &mockListGateway{
		listUsersFunc: func(_ context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.UserPage, error) {
			assert.Equal(t, "T", auth.Token)
			assert.Equal(t, "p-1", auth.ProjectID)
			assert.Equal(t, 20, q.Skip)
			assert.Equal(t, 10, q.Limit)
			return &model.UserPage{Users: []model.User{{ID: "u-1"}}, Total: 1}, nil
		},
	}
	h := &EntityHandlers{Lists: lists, Svc: &mockEntityService{}}

	w, r := newTestRequest(http.MethodGet, "/api/users?page=3&limit=10", scopedTestSnap())
	h.ListUsers(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var page model.UserPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
}

func TestListUsersUpstream401(t *testing.T) {
	lists := &mockListGateway{
		listUsersFunc: func(context.Context, gateway.Auth, gateway.PageQuery) (*model.UserPage, error) {
			return nil, gateway.ErrUnauthorized
		},
	}
	h := &EntityHandlers{Lists: lists, Svc: &mockEntityService{}}

	w, r := newTestRequest(http.MethodGet, "/api/users", scopedTestSnap())
	h.ListUsers(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect_to"])
}

func TestCreateUser(t *testing.T) {
	svc := &mockEntityService{
		createUserFunc: func(_ context.Context, snap session.Snapshot, user *model.User) (*model.User, error) {
			assert.Equal(t, "p-1", snap.ActiveProjectID())
			out := *user
			out.ID = "u-9"
			return &out, nil
		},
	}
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: svc}

	w, r := jsonRequest(http.MethodPost, "/api/users", `{"email":"new@example.com"}`, scopedTestSnap())
	h.CreateUser(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var created model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "u-9", created.ID)
}

func TestUpdateUserRoles(t *testing.T) {
	var gotUserID string
	svc := &mockEntityService{
		updateUserRolesFunc: func(_ context.Context, _ session.Snapshot, userID string, req *model.UserRoleUpdate) error {
			gotUserID = userID
			require.Len(t, req.ToBeAdded, 1)
			assert.Equal(t, "r-1", req.ToBeAdded[0].ID)
			return nil
		},
	}
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: svc}

	w, r := jsonRequest(http.MethodPut, "/api/users/u-1/roles", `{"to_be_added":[{"id":"r-1","name":"reader"}]}`, scopedTestSnap())
	r.SetPathValue("id", "u-1")
	h.UpdateUserRoles(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", gotUserID)
}

func TestTransferOwnershipPathValues(t *testing.T) {
	var gotOld, gotNew string
	svc := &mockEntityService{
		transferOwnershipFunc: func(_ context.Context, _ session.Snapshot, oldID, newOwnerID string) error {
			gotOld, gotNew = oldID, newOwnerID
			return nil
		},
	}
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: svc}

	w, r := newTestRequest(http.MethodPost, "/api/users/u-1/transfer-ownership/u-2", scopedTestSnap())
	r.SetPathValue("id", "u-1")
	r.SetPathValue("newOwner", "u-2")
	h.TransferOwnership(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", gotOld)
	assert.Equal(t, "u-2", gotNew)
}

func TestSearchResourcesNeedsNoSession(t *testing.T) {
	lists := &mockListGateway{
		searchResourcesFunc: func(_ context.Context, q gateway.PageQuery) (*model.ResourcePage, error) {
			assert.Equal(t, "read", q.Search)
			return &model.ResourcePage{Resources: []model.Resource{{Key: "@goiam:ui:users:read"}}}, nil
		},
	}
	h := &EntityHandlers{Lists: lists, Svc: &mockEntityService{}}

	// No snapshot attached: resource search is globally readable.
	w, r := newTestRequest(http.MethodGet, "/api/resources?search=read", nil)
	h.SearchResources(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateServiceAccount(t *testing.T) {
	var gotName string
	svc := &mockEntityService{
		createSAFunc: func(_ context.Context, _ session.Snapshot, name string) (*model.Client, error) {
			gotName = name
			return &model.Client{ID: "c-9", Name: name, GoIamClient: true}, nil
		},
	}
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: svc}

	w, r := jsonRequest(http.MethodPost, "/api/clients/service-account", `{"name":"console-sa"}`, scopedTestSnap())
	h.CreateServiceAccount(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "console-sa", gotName)
	var created model.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.GoIamClient)
}

func TestUpdateAuthProviderUsesPathID(t *testing.T) {
	svc := &mockEntityService{
		updateProviderFunc: func(_ context.Context, _ session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error) {
			assert.Equal(t, "ap-1", provider.ID)
			return provider, nil
		},
	}
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: svc}

	w, r := jsonRequest(http.MethodPut, "/api/auth-providers/ap-1", `{"name":"corp-idp","provider":"OIDC"}`, scopedTestSnap())
	r.SetPathValue("id", "ap-1")
	h.UpdateAuthProvider(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestListPoliciesPaging(t *testing.T) {
	lists := &mockListGateway{
		listPoliciesFunc: func(_ context.Context, _ gateway.Auth, skip, limit int) (*model.PolicyPage, error) {
			assert.Equal(t, 0, skip)
			assert.Equal(t, 50, limit)
			return &model.PolicyPage{}, nil
		},
	}
	h := &EntityHandlers{Lists: lists, Svc: &mockEntityService{}}

	w, r := newTestRequest(http.MethodGet, "/api/policies?limit=50", scopedTestSnap())
	h.ListPolicies(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMutationWithoutSnapshotRejected(t *testing.T) {
	h := &EntityHandlers{Lists: &mockListGateway{}, Svc: &mockEntityService{}}

	w, r := jsonRequest(http.MethodPost, "/api/roles", `{"name":"reader"}`, nil)
	h.CreateRole(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
