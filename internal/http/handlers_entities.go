package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/gateway"
)

// ListGateway defines the read-side upstream calls the entity handlers proxy.
type ListGateway interface {
	ListUsers(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.UserPage, error)
	ListRoles(ctx context.Context, auth gateway.Auth, q gateway.PageQuery) (*model.RolePage, error)
	SearchResources(ctx context.Context, q gateway.PageQuery) (*model.ResourcePage, error)
	ListClients(ctx context.Context, auth gateway.Auth) ([]model.Client, error)
	ListAuthProviders(ctx context.Context, auth gateway.Auth) ([]model.AuthProvider, error)
	ListPolicies(ctx context.Context, auth gateway.Auth, skip, limit int) (*model.PolicyPage, error)
}

// EntityServiceInterface defines the mutation operations the entity handlers
// route through the service layer.
type EntityServiceInterface interface {
	CreateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error)
	UpdateUserRoles(ctx context.Context, snap session.Snapshot, userID string, req *model.UserRoleUpdate) error
	UpdateUserPolicies(ctx context.Context, snap session.Snapshot, userID string, req *model.UserPolicyUpdate) error
	TransferOwnership(ctx context.Context, snap session.Snapshot, oldID, newOwnerID string) error
	CopyResources(ctx context.Context, snap session.Snapshot, sourceID, targetID string) error
	CreateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error)
	UpdateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error)
	CreateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error)
	UpdateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error)
	CreateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error)
	UpdateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error)
	CreateServiceAccount(ctx context.Context, snap session.Snapshot, name string) (*model.Client, error)
	CreateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error)
	UpdateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error)
}

// EntityHandlers proxies entity CRUD between the browser and the GoIAM API,
// with the session's bearer token and project scope attached server-side.
type EntityHandlers struct {
	Lists ListGateway
	Svc   EntityServiceInterface
}

// requireSnapshot pulls the snapshot out of the context, writing the error
// response itself when none is present.
func requireSnapshot(w http.ResponseWriter, r *http.Request) (*session.Snapshot, bool) {
	snap, ok := GetSnapshotFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return nil, false
	}
	return snap, true
}

func authOf(snap *session.Snapshot) gateway.Auth {
	return gateway.Auth{Token: snap.Token, ProjectID: snap.ActiveProjectID()}
}

// ListUsers handles GET /api/users.
func (h *EntityHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	page, err := h.Lists.ListUsers(r.Context(), authOf(snap), parsePageQuery(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// CreateUser handles POST /api/users.
func (h *EntityHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var user model.User
	if !DecodeJSON(w, r, &user) {
		return
	}
	created, err := h.Svc.CreateUser(r.Context(), *snap, &user)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /api/users/{id}.
func (h *EntityHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var user model.User
	if !DecodeJSON(w, r, &user) {
		return
	}
	user.ID = r.PathValue("id")
	updated, err := h.Svc.UpdateUser(r.Context(), *snap, &user)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// UpdateUserRoles handles PUT /api/users/{id}/roles.
func (h *EntityHandlers) UpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var req model.UserRoleUpdate
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.UpdateUserRoles(r.Context(), *snap, r.PathValue("id"), &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// UpdateUserPolicies handles PUT /api/users/{id}/policies.
func (h *EntityHandlers) UpdateUserPolicies(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var req model.UserPolicyUpdate
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.UpdateUserPolicies(r.Context(), *snap, r.PathValue("id"), &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// TransferOwnership handles POST /api/users/{id}/transfer-ownership/{newOwner}.
func (h *EntityHandlers) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	if err := h.Svc.TransferOwnership(r.Context(), *snap, r.PathValue("id"), r.PathValue("newOwner")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// CopyResources handles POST /api/users/{id}/copy-resources/{target}.
func (h *EntityHandlers) CopyResources(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	if err := h.Svc.CopyResources(r.Context(), *snap, r.PathValue("id"), r.PathValue("target")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ListRoles handles GET /api/roles.
func (h *EntityHandlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	page, err := h.Lists.ListRoles(r.Context(), authOf(snap), parsePageQuery(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// CreateRole handles POST /api/roles.
func (h *EntityHandlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var role model.Role
	if !DecodeJSON(w, r, &role) {
		return
	}
	created, err := h.Svc.CreateRole(r.Context(), *snap, &role)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateRole handles PUT /api/roles/{id}.
func (h *EntityHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var role model.Role
	if !DecodeJSON(w, r, &role) {
		return
	}
	role.ID = r.PathValue("id")
	updated, err := h.Svc.UpdateRole(r.Context(), *snap, &role)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// SearchResources handles GET /api/resources. Resource search is a global
// endpoint on the upstream; no credentials or scope are attached.
func (h *EntityHandlers) SearchResources(w http.ResponseWriter, r *http.Request) {
	page, err := h.Lists.SearchResources(r.Context(), parsePageQuery(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// CreateResource handles POST /api/resources.
func (h *EntityHandlers) CreateResource(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var resource model.Resource
	if !DecodeJSON(w, r, &resource) {
		return
	}
	created, err := h.Svc.CreateResource(r.Context(), *snap, &resource)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateResource handles PUT /api/resources/{id}.
func (h *EntityHandlers) UpdateResource(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var resource model.Resource
	if !DecodeJSON(w, r, &resource) {
		return
	}
	resource.ID = r.PathValue("id")
	updated, err := h.Svc.UpdateResource(r.Context(), *snap, &resource)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// ListClients handles GET /api/clients.
func (h *EntityHandlers) ListClients(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	clients, err := h.Lists.ListClients(r.Context(), authOf(snap))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

// CreateClient handles POST /api/clients.
func (h *EntityHandlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var client model.Client
	if !DecodeJSON(w, r, &client) {
		return
	}
	created, err := h.Svc.CreateClient(r.Context(), *snap, &client)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateClient handles PUT /api/clients/{id}.
func (h *EntityHandlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var client model.Client
	if !DecodeJSON(w, r, &client) {
		return
	}
	client.ID = r.PathValue("id")
	updated, err := h.Svc.UpdateClient(r.Context(), *snap, &client)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

type serviceAccountRequest struct {
	Name string `json:"name"`
}

// CreateServiceAccount handles POST /api/clients/service-account: it
// registers the machine client GoIAM itself uses for this deployment.
func (h *EntityHandlers) CreateServiceAccount(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var req serviceAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	created, err := h.Svc.CreateServiceAccount(r.Context(), *snap, req.Name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// ListAuthProviders handles GET /api/auth-providers.
func (h *EntityHandlers) ListAuthProviders(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	providers, err := h.Lists.ListAuthProviders(r.Context(), authOf(snap))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"auth_providers": providers})
}

// CreateAuthProvider handles POST /api/auth-providers.
func (h *EntityHandlers) CreateAuthProvider(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var provider model.AuthProvider
	if !DecodeJSON(w, r, &provider) {
		return
	}
	created, err := h.Svc.CreateAuthProvider(r.Context(), *snap, &provider)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateAuthProvider handles PUT /api/auth-providers/{id}.
func (h *EntityHandlers) UpdateAuthProvider(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	var provider model.AuthProvider
	if !DecodeJSON(w, r, &provider) {
		return
	}
	provider.ID = r.PathValue("id")
	updated, err := h.Svc.UpdateAuthProvider(r.Context(), *snap, &provider)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// ListPolicies handles GET /api/policies.
func (h *EntityHandlers) ListPolicies(w http.ResponseWriter, r *http.Request) {
	snap, ok := requireSnapshot(w, r)
	if !ok {
		return
	}
	q := parsePageQuery(r)
	page, err := h.Lists.ListPolicies(r.Context(), authOf(snap), q.Skip, q.Limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}
