package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/ports"
)

// ProjectGateway is the slice of the GoIAM API the scope service needs.
type ProjectGateway interface {
	ListProjects(ctx context.Context, token, search string) ([]model.Project, error)
	CreateProject(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, token, id string, req *model.UpdateProjectRequest) (*model.Project, error)
}

// ScopeServiceOptions groups dependencies for ScopeService.
type ScopeServiceOptions struct {
	Store   ports.SnapshotStore
	Gateway ProjectGateway
	Config  ScopeServiceConfig
}

// ScopeServiceConfig carries optional collaborators.
type ScopeServiceConfig struct {
	Audit  ports.AuditRecorder // Optional
	Logger *slog.Logger        // Optional
}

// ScopeService manages the project list and the session's active project
// scope. Selecting a project is a full-context change: the result tells the
// handler to signal the browser to reload.
type ScopeService struct {
	store   ports.SnapshotStore
	gw      ProjectGateway
	audit   ports.AuditRecorder
	logger  *slog.Logger
	flights singleflight.Group
}

// NewScopeService constructs a new ScopeService.
func NewScopeService(opts ScopeServiceOptions) *ScopeService {
	if opts.Store == nil {
		panic("scope service requires a snapshot store")
	}
	if opts.Gateway == nil {
		panic("scope service requires a project gateway")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ScopeService{
		store:  opts.Store,
		gw:     opts.Gateway,
		audit:  opts.Config.Audit,
		logger: logger,
	}
}

// Projects lists the projects visible to the session. While no project is
// explicitly selected, the first entry is cached as the session's default
// scope. Concurrent fetches for the same session collapse into one call.
func (s *ScopeService) Projects(ctx context.Context, snap session.Snapshot, search string) ([]model.Project, error) {
	v, err, _ := s.flights.Do("projects:"+snap.ID+":"+search, func() (any, error) {
		projects, err := s.gw.ListProjects(ctx, snap.Token, search)
		if err != nil {
			return nil, err
		}

		if snap.SelectedProject == nil && len(projects) > 0 {
			first := projects[0]
			if snap.DefaultProject == nil || snap.DefaultProject.ID != first.ID {
				snap.DefaultProject = &first
				if saveErr := s.store.Save(ctx, snap); saveErr != nil {
					s.logger.WarnContext(ctx, "save default project", "session_id", snap.ID, "error", saveErr)
				}
			}
		}
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Project), nil
}

// SelectResult reports the outcome of a project selection.
type SelectResult struct {
	Project *model.Project
	// Reload tells the browser to reload the whole console so every view
	// re-fetches under the new scope.
	Reload bool
}

// SelectProject switches the session's active project. An id that is not in
// the session's project list is logged and ignored.
func (s *ScopeService) SelectProject(ctx context.Context, snap session.Snapshot, projectID string) (*SelectResult, error) {
	if projectID == "" {
		return nil, errors.New("project id is required")
	}

	projects, err := s.gw.ListProjects(ctx, snap.Token, "")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var found *model.Project
	for i := range projects {
		if projects[i].ID == projectID {
			found = &projects[i]
			break
		}
	}
	if found == nil {
		s.logger.WarnContext(ctx, "project selection ignored, id not visible", "session_id", snap.ID, "project_id", projectID)
		return &SelectResult{Project: snap.SelectedProject, Reload: false}, nil
	}

	snap.SelectedProject = found
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	s.record(ctx, &snap, model.AuditActionProjectSwitch, "project", found.ID)
	return &SelectResult{Project: found, Reload: true}, nil
}

// CreateProject creates a project upstream and records the action.
func (s *ScopeService) CreateProject(ctx context.Context, snap session.Snapshot, req *model.CreateProjectRequest) (*model.Project, error) {
	created, err := s.gw.CreateProject(ctx, snap.Token, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &snap, model.AuditActionEntityCreate, "project", created.ID)
	return created, nil
}

// UpdateProject updates a project upstream and records the action.
func (s *ScopeService) UpdateProject(ctx context.Context, snap session.Snapshot, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	updated, err := s.gw.UpdateProject(ctx, snap.Token, id, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &snap, model.AuditActionEntityUpdate, "project", id)

	// Keep a stale selected copy in sync with the rename.
	if snap.SelectedProject != nil && snap.SelectedProject.ID == id {
		snap.SelectedProject = updated
		if saveErr := s.store.Save(ctx, snap); saveErr != nil {
			s.logger.WarnContext(ctx, "save session after project update", "session_id", snap.ID, "error", saveErr)
		}
	}
	return updated, nil
}

func (s *ScopeService) record(ctx context.Context, snap *session.Snapshot, action model.AuditAction, entity, entityID string) {
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
