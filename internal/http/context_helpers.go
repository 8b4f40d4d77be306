package httpx

import (
	"context"

	"github.com/goiam/console/internal/domain/session"
)

// snapshotKey is an unexported context key type to avoid collisions across
// packages. Centralized here so all handlers and middleware share it.
type snapshotKey struct{}

// sessionIDKey carries the browser session id independently of whether a
// snapshot could be loaded.
type sessionIDKey struct{}

// SetSnapshotInContext returns a child context carrying the session snapshot.
func SetSnapshotInContext(ctx context.Context, snap *session.Snapshot) context.Context {
	if snap == nil {
		return ctx
	}
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// GetSnapshotFromContext returns the snapshot from context and whether one
// is present.
func GetSnapshotFromContext(ctx context.Context) (*session.Snapshot, bool) {
	if snap, ok := ctx.Value(snapshotKey{}).(*session.Snapshot); ok && snap != nil {
		return snap, true
	}
	return nil, false
}

// SetSessionIDInContext returns a child context carrying the session id.
func SetSessionIDInContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// GetSessionIDFromContext returns the session id from context, or "".
func GetSessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
