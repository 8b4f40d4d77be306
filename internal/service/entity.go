package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	apperrors "github.com/goiam/console/internal/errors"
	"github.com/goiam/console/internal/gateway"
	"github.com/goiam/console/internal/ports"
)

// EntityGateway is the slice of the GoIAM API the entity service needs for
// mutations.
type EntityGateway interface {
	CreateUser(ctx context.Context, auth gateway.Auth, user *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, auth gateway.Auth, user *model.User) (*model.User, error)
	UpdateUserRoles(ctx context.Context, auth gateway.Auth, userID string, req *model.UserRoleUpdate) error
	UpdateUserPolicies(ctx context.Context, auth gateway.Auth, userID string, req *model.UserPolicyUpdate) error
	TransferOwnership(ctx context.Context, auth gateway.Auth, oldID, newOwnerID string) error
	CopyResources(ctx context.Context, auth gateway.Auth, sourceID, targetID string) error

	CreateRole(ctx context.Context, auth gateway.Auth, role *model.Role) (*model.Role, error)
	UpdateRole(ctx context.Context, auth gateway.Auth, role *model.Role) (*model.Role, error)

	CreateResource(ctx context.Context, auth gateway.Auth, resource *model.Resource) (*model.Resource, error)
	UpdateResource(ctx context.Context, auth gateway.Auth, resource *model.Resource) (*model.Resource, error)

	CreateClient(ctx context.Context, auth gateway.Auth, client *model.Client) (*model.Client, error)
	UpdateClient(ctx context.Context, auth gateway.Auth, client *model.Client) (*model.Client, error)

	CreateAuthProvider(ctx context.Context, auth gateway.Auth, provider *model.AuthProvider) (*model.AuthProvider, error)
	UpdateAuthProvider(ctx context.Context, auth gateway.Auth, provider *model.AuthProvider) (*model.AuthProvider, error)
}

// EntityServiceOptions groups dependencies for EntityService.
type EntityServiceOptions struct {
	Gateway EntityGateway
	Config  EntityServiceConfig
}

// EntityServiceConfig carries optional collaborators.
type EntityServiceConfig struct {
	Issuers ports.IssuerVerifier // Optional: skips issuer checks when nil
	Audit   ports.AuditRecorder  // Optional
	Logger  *slog.Logger         // Optional
}

// EntityService routes entity mutations to the upstream API, validating OIDC
// issuers before auth providers are saved and recording each change.
type EntityService struct {
	gw      EntityGateway
	issuers ports.IssuerVerifier
	audit   ports.AuditRecorder
	logger  *slog.Logger
}

// NewEntityService constructs a new EntityService.
func NewEntityService(opts EntityServiceOptions) *EntityService {
	if opts.Gateway == nil {
		panic("entity service requires a gateway")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityService{
		gw:      opts.Gateway,
		issuers: opts.Config.Issuers,
		audit:   opts.Config.Audit,
		logger:  logger,
	}
}

func sessionAuth(snap session.Snapshot) gateway.Auth {
	return gateway.Auth{Token: snap.Token, ProjectID: snap.ActiveProjectID()}
}

// CreateUser creates a user in the active project.
func (s *EntityService) CreateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error) {
	created, err := s.gw.CreateUser(ctx, sessionAuth(snap), user)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "user", created.ID)
	return created, nil
}

// UpdateUser updates a user in the active project.
func (s *EntityService) UpdateUser(ctx context.Context, snap session.Snapshot, user *model.User) (*model.User, error) {
	updated, err := s.gw.UpdateUser(ctx, sessionAuth(snap), user)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "user", updated.ID)
	return updated, nil
}

// UpdateUserRoles replaces the role assignment of a user.
func (s *EntityService) UpdateUserRoles(ctx context.Context, snap session.Snapshot, userID string, req *model.UserRoleUpdate) error {
	if err := s.gw.UpdateUserRoles(ctx, sessionAuth(snap), userID, req); err != nil {
		return err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "user", userID)
	return nil
}

// UpdateUserPolicies replaces the policy assignment of a user.
func (s *EntityService) UpdateUserPolicies(ctx context.Context, snap session.Snapshot, userID string, req *model.UserPolicyUpdate) error {
	if err := s.gw.UpdateUserPolicies(ctx, sessionAuth(snap), userID, req); err != nil {
		return err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "user", userID)
	return nil
}

// TransferOwnership moves a user's owned resources to a new owner.
func (s *EntityService) TransferOwnership(ctx context.Context, snap session.Snapshot, oldID, newOwnerID string) error {
	if err := s.gw.TransferOwnership(ctx, sessionAuth(snap), oldID, newOwnerID); err != nil {
		return err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "user", oldID)
	return nil
}

// CopyResources copies a user's resource access to another user.
func (s *EntityService) CopyResources(ctx context.Context, snap session.Snapshot, sourceID, targetID string) error {
	if err := s.gw.CopyResources(ctx, sessionAuth(snap), sourceID, targetID); err != nil {
		return err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "user", sourceID)
	return nil
}

// CreateRole creates a role in the active project.
func (s *EntityService) CreateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error) {
	created, err := s.gw.CreateRole(ctx, sessionAuth(snap), role)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "role", created.ID)
	return created, nil
}

// UpdateRole updates a role in the active project.
func (s *EntityService) UpdateRole(ctx context.Context, snap session.Snapshot, role *model.Role) (*model.Role, error) {
	updated, err := s.gw.UpdateRole(ctx, sessionAuth(snap), role)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "role", updated.ID)
	return updated, nil
}

// CreateResource creates a resource in the active project.
func (s *EntityService) CreateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error) {
	created, err := s.gw.CreateResource(ctx, sessionAuth(snap), resource)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "resource", created.ID)
	return created, nil
}

// UpdateResource updates a resource in the active project.
func (s *EntityService) UpdateResource(ctx context.Context, snap session.Snapshot, resource *model.Resource) (*model.Resource, error) {
	updated, err := s.gw.UpdateResource(ctx, sessionAuth(snap), resource)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "resource", updated.ID)
	return updated, nil
}

// CreateClient creates an OAuth client in the active project.
func (s *EntityService) CreateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error) {
	created, err := s.gw.CreateClient(ctx, sessionAuth(snap), client)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "client", created.ID)
	return created, nil
}

// UpdateClient updates an OAuth client in the active project.
func (s *EntityService) UpdateClient(ctx context.Context, snap session.Snapshot, client *model.Client) (*model.Client, error) {
	updated, err := s.gw.UpdateClient(ctx, sessionAuth(snap), client)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "client", updated.ID)
	return updated, nil
}

// CreateServiceAccount creates a machine client marked for GoIAM itself.
func (s *EntityService) CreateServiceAccount(ctx context.Context, snap session.Snapshot, name string) (*model.Client, error) {
	if name == "" {
		return nil, apperrors.ValidationField("name", "This field is required.")
	}
	client := &model.Client{
		Name:        name,
		GoIamClient: true,
	}
	created, err := s.gw.CreateClient(ctx, sessionAuth(snap), client)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "client", created.ID)
	return created, nil
}

// CreateAuthProvider saves a new auth provider, first validating the issuer
// of OIDC providers by running discovery against it.
func (s *EntityService) CreateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error) {
	if err := s.checkIssuer(ctx, provider); err != nil {
		return nil, err
	}
	created, err := s.gw.CreateAuthProvider(ctx, sessionAuth(snap), provider)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityCreate, "auth_provider", created.ID)
	return created, nil
}

// UpdateAuthProvider updates an auth provider, re-validating OIDC issuers.
func (s *EntityService) UpdateAuthProvider(ctx context.Context, snap session.Snapshot, provider *model.AuthProvider) (*model.AuthProvider, error) {
	if err := s.checkIssuer(ctx, provider); err != nil {
		return nil, err
	}
	updated, err := s.gw.UpdateAuthProvider(ctx, sessionAuth(snap), provider)
	if err != nil {
		return nil, err
	}
	s.record(ctx, snap, model.AuditActionEntityUpdate, "auth_provider", updated.ID)
	return updated, nil
}

func (s *EntityService) checkIssuer(ctx context.Context, provider *model.AuthProvider) error {
	if s.issuers == nil || provider == nil || !provider.IsOIDC() {
		return nil
	}
	issuer := provider.Param(model.IssuerParamKey)
	if issuer == "" {
		return apperrors.ValidationField("issuer", "This field is required.")
	}
	if err := s.issuers.VerifyIssuer(ctx, issuer); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, fmt.Sprintf("issuer %q failed discovery", issuer))
	}
	return nil
}

func (s *EntityService) record(ctx context.Context, snap session.Snapshot, action model.AuditAction, entity, entityID string) {
	if s.audit == nil {
		return
	}
	req := &model.RecordAuditRequest{
		SessionID: snap.ID,
		Actor:     snap.Actor(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
	}
	if err := s.audit.Record(ctx, req); err != nil {
		s.logger.WarnContext(ctx, "record audit event", "action", string(action), "error", err)
	}
}
