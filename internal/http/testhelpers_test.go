package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/gateway"
	"github.com/goiam/console/internal/service"
)

// mockSessionService is a test double for the session service.
type mockSessionService struct {
	bootstrapFunc func(ctx context.Context, sessionID string, force bool) (session.Snapshot, error)
	verifyFunc    func(ctx context.Context, sessionID, code string) (session.Snapshot, error)
	logoutFunc    func(ctx context.Context, sessionID string) error
	currentFunc   func(ctx context.Context, sessionID string) (session.Snapshot, error)
}

func (m *mockSessionService) Bootstrap(ctx context.Context, sessionID string, force bool) (session.Snapshot, error) {
	if m.bootstrapFunc != nil {
		return m.bootstrapFunc(ctx, sessionID, force)
	}
	return session.Snapshot{ID: sessionID, ClientID: "c-1", LoadedState: true}, nil
}

func (m *mockSessionService) Verify(ctx context.Context, sessionID, code string) (session.Snapshot, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, sessionID, code)
	}
	return session.Snapshot{ID: sessionID, Token: "T", Verified: true}, nil
}

func (m *mockSessionService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockSessionService) Current(ctx context.Context, sessionID string) (session.Snapshot, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx, sessionID)
	}
	return session.Snapshot{ID: sessionID, Token: "T"}, nil
}

// mockScopeService is a test double for the scope service.
type mockScopeService struct {
	projectsFunc func(ctx context.Context, snap session.Snapshot, search string) ([]model.Project, error)
	selectFunc   func(ctx context.Context, snap session.Snapshot, projectID string) (*service.SelectResult, error)
	createFunc   func(ctx context.Context, snap session.Snapshot, req *model.CreateProjectRequest) (*model.Project, error)
	updateFunc   func(ctx context.Context, snap session.Snapshot, id string, req *model.UpdateProjectRequest) (*model.Project, error)
}

func (m *mockScopeService) Projects(ctx context.Context, snap session.Snapshot, search string) ([]model.Project, error) {
	if m.projectsFunc != nil {
		return m.projectsFunc(ctx, snap, search)
	}
	return nil, nil
}

func (m *mockScopeService) SelectProject(ctx context.Context, snap session.Snapshot, projectID string) (*service.SelectResult, error) {
	if m.selectFunc != nil {
		return m.selectFunc(ctx, snap, projectID)
	}
	return &service.SelectResult{}, nil
}

func (m *mockScopeService) CreateProject(ctx context.Context, snap session.Snapshot, req *model.CreateProjectRequest) (*model.Project, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, snap, req)
	}
	return &model.Project{}, nil
}

func (m *mockScopeService) UpdateProject(ctx context.Context, snap session.Snapshot, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, snap, id, req)
	}
	return &model.Project{ID: id}, nil
}

// mockListGateway is a test double for the read-side gateway calls.
type mockListGateway struct {
	listUsersFunc       func(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.UserPage, error)
	listRolesFunc       func(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.RolePage, error)
	searchResourcesFunc func(ctx context.Context, q gateway.PageQuery) (*model.ResourcePage, error)
	listClientsFunc     func(ctx context.Context, auth gateway.Auth) ([]model.Client, error)
	listProvidersFunc   func(ctx context.Context, auth gateway.Auth) ([]model.AuthProvider, error)
	listPoliciesFunc    func(ctx context.Context, auth gateway.Auth, skip, limit int) (*model.PolicyPage, error)
}

func (m *mockListGateway) ListUsers(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.UserPage, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, auth, q)
	}
	return &model.UserPage{}, nil
}

func (m *mockListGateway) ListRoles(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.RolePage, error) {
	if m.listRolesFunc != nil {
		return m.listRolesFunc(ctx, auth, q)
	}
	return &model.RolePage{}, nil
}

func (m *mockListGateway) SearchResources(ctx context.Context, q gateway.PageQuery) (*model.ResourcePage, error) {
	if m.searchResourcesFunc != nil {
		return m.searchResourcesFunc(ctx, q)
	}
	return &model.ResourcePage{}, nil
}

func (m *mockListGateway) ListClients(ctx context.Context, auth gateway.Auth) ([]model.Client, error) {
	if m.listClientsFunc != nil {
		return m.listClientsFunc(ctx, auth)
	}
	return nil, nil
}

func (m *mockListGateway) ListAuthProviders(ctx context.Context, auth gateway.Auth) ([]model.AuthProvider, error) {
	if m.listProvidersFunc != nil {
		return m.listProvidersFunc(ctx, auth)
	}
	return nil, nil
}

func (m *mockListGateway) ListPolicies(ctx context.Context, auth gateway.Auth, skip, limit int) (*model.PolicyPage, error) {
	if m.listPoliciesFunc != nil {
		return m.listPoliciesFunc(ctx, auth, skip, limit)
	}
	return &model.PolicyPage{}, nil
}

// mockEntityService is a test double for the entity service.
type mockEntityService struct {
	createUserFunc         func(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error)
	updateUserFunc         func(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error)
	updateUserRolesFunc    func(ctx context.Context, snap session.Snapshot, userID string, req *model.UserRoleUpdate) error
	updateUserPoliciesFunc func(ctx context.Context, snap session.Snapshot, userID string, req *model.UserPolicyUpdate) error
	transferOwnershipFunc  func(ctx context.Context, snap session.Snapshot, oldID, newOwnerID string) error
	copyResourcesFunc      func(ctx context.Context, snap session.Snapshot, sourceID, targetID string) error
	createRoleFunc         func(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error)
	updateRoleFunc         func(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error)
	createResourceFunc     func(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error)
	updateResourceFunc     func(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error)
	createClientFunc       func(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error)
	updateClientFunc       func(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error)
	createSAFunc           func(ctx context.Context, snap session.Snapshot, name string) (*model.Client, error)
	createProviderFunc     func(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error)
	updateProviderFunc     func(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error)
}

func (m *mockEntityService) CreateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, snap, user)
	}
	return user, nil
}

func (m *mockEntityService) UpdateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error) {
	if m.updateUserFunc != nil {
		return m.updateUserFunc(ctx, snap, user)
	}
	return user, nil
}

func (m *mockEntityService) UpdateUserRoles(ctx context.Context, snap session.Snapshot, userID string, req *model.UserRoleUpdate) error {
	if m.updateUserRolesFunc != nil {
		return m.updateUserRolesFunc(ctx, snap, userID, req)
	}
	return nil
}

func (m *mockEntityService) UpdateUserPolicies(ctx context.Context, snap session.Snapshot, userID string, req *model.UserPolicyUpdate) error {
	if m.updateUserPoliciesFunc != nil {
		return m.updateUserPoliciesFunc(ctx, snap, userID, req)
	}
	return nil
}

func (m *mockEntityService) TransferOwnership(ctx context.Context, snap session.Snapshot, oldID, newOwnerID string) error {
	if m.transferOwnershipFunc != nil {
		return m.transferOwnershipFunc(ctx, snap, oldID, newOwnerID)
	}
	return nil
}

func (m *mockEntityService) CopyResources(ctx context.Context, snap session.Snapshot, sourceID, targetID string) error {
	if m.copyResourcesFunc != nil {
		return m.copyResourcesFunc(ctx, snap, sourceID, targetID)
	}
	return nil
}

func (m *mockEntityService) CreateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error) {
	if m.createRoleFunc != nil {
		return m.createRoleFunc(ctx, snap, role)
	}
	return role, nil
}

func (m *mockEntityService) UpdateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error) {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, snap, role)
	}
	return role, nil
}

func (m *mockEntityService) CreateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error) {
	if m.createResourceFunc != nil {
		return m.createResourceFunc(ctx, snap, resource)
	}
	return resource, nil
}

func (m *mockEntityService) UpdateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error) {
	if m.updateResourceFunc != nil {
		return m.updateResourceFunc(ctx, snap, resource)
	}
	return resource, nil
}

func (m *mockEntityService) CreateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error) {
	if m.createClientFunc != nil {
		return m.createClientFunc(ctx, snap, client)
	}
	return client, nil
}

func (m *mockEntityService) UpdateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error) {
	if m.updateClientFunc != nil {
		return m.updateClientFunc(ctx, snap, client)
	}
	return client, nil
}

func (m *mockEntityService) CreateServiceAccount(ctx context.Context, snap session.Snapshot, name string) (*model.Client, error) {
	if m.createSAFunc != nil {
		return m.createSAFunc(ctx, snap, name)
	}
	return &model.Client{Name: name, GoIamClient: true}, nil
}

func (m *mockEntityService) CreateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error) {
	if m.createProviderFunc != nil {
		return m.createProviderFunc(ctx, snap, provider)
	}
	return provider, nil
}

func (m *mockEntityService) UpdateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error) {
	if m.updateProviderFunc != nil {
		return m.updateProviderFunc(ctx, snap, provider)
	}
	return provider, nil
}

// withTestSession attaches a session id (and optionally a snapshot) to the
// request the way the middleware chain would.
func withTestSession(r *http.Request, sid string, snap *session.Snapshot) *http.Request {
	ctx := SetSessionIDInContext(r.Context(), sid)
	if snap != nil {
		ctx = SetSnapshotInContext(ctx, snap)
	}
	return r.WithContext(ctx)
}

func newTestRequest(method, target string, snap *session.Snapshot) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(method, target, nil)
	return httptest.NewRecorder(), withTestSession(r, "sid-1", snap)
}
