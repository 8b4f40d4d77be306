package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/goiam/console/internal/domain/model"
)

// AuditTrailReader returns the recorded actions of a session.
type AuditTrailReader interface {
	Trail(ctx context.Context, sessionID string, limit int) ([]model.AuditEvent, error)
}

// AuditHandlers exposes the session's own audit trail.
type AuditHandlers struct {
	Svc AuditTrailReader
}

// Trail handles GET /api/audit. A session only ever sees its own events.
func (h *AuditHandlers) Trail(w http.ResponseWriter, r *http.Request) {
	sid := GetSessionIDFromContext(r.Context())
	if sid == "" {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_session", Err: errors.New("no session")})
		return
	}

	limit := parseBoundedInt(r.URL.Query().Get("limit"), 50, 1, 500)
	events, err := h.Svc.Trail(r.Context(), sid, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
