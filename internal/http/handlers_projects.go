package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/service"
)

// ScopeServiceInterface defines the scope operations the project handlers use.
type ScopeServiceInterface interface {
	Projects(ctx context.Context, snap session.Snapshot, search string) ([]model.Project, error)
	SelectProject(ctx context.Context, snap session.Snapshot, projectID string) (*service.SelectResult, error)
	CreateProject(ctx context.Context, snap session.Snapshot, req *model.CreateProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, snap session.Snapshot, id string, req *model.UpdateProjectRequest) (*model.Project, error)
}

// ProjectHandlers provides HTTP handlers for project listing, editing, and
// scope selection.
type ProjectHandlers struct {
	Svc ScopeServiceInterface
}

// List returns the projects visible to the session.
// GET /api/projects?search=<term>.
func (h *ProjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	snap, ok := GetSnapshotFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return
	}

	projects, err := h.Svc.Projects(r.Context(), *snap, r.URL.Query().Get("search"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// Create creates a new project.
// POST /api/projects.
func (h *ProjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	snap, ok := GetSnapshotFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return
	}

	var req model.CreateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	created, err := h.Svc.CreateProject(r.Context(), *snap, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// Update updates an existing project.
// PUT /api/projects/{id}.
func (h *ProjectHandlers) Update(w http.ResponseWriter, r *http.Request) {
	snap, ok := GetSnapshotFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("project id is required")})
		return
	}

	var req model.UpdateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	updated, err := h.Svc.UpdateProject(r.Context(), *snap, id, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

type selectProjectRequest struct {
	ProjectID string `json:"project_id"`
}

// Select switches the session's active project. A successful switch tells
// the browser to reload so every view re-fetches under the new scope.
// POST /api/projects/select.
func (h *ProjectHandlers) Select(w http.ResponseWriter, r *http.Request) {
	snap, ok := GetSnapshotFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return
	}

	var req selectProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_project_id", Err: errors.New("project_id is required")})
		return
	}

	result, err := h.Svc.SelectProject(r.Context(), *snap, req.ProjectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"reload":  result.Reload,
		"project": result.Project,
	})
}
