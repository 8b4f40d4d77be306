package ports

// Package ports defines interfaces (hexagonal ports) for the console's
// infrastructure concerns. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.

import (
	"context"

	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
)

// SnapshotStore persists and retrieves per-browser session snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snap session.Snapshot) error
	Get(ctx context.Context, id string) (session.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// AuditRecorder records operator actions. Recording is best-effort: callers
// log failures and never let them fail the triggering operation.
type AuditRecorder interface {
	Record(ctx context.Context, req *model.RecordAuditRequest) error
}

// IssuerVerifier checks that an OIDC issuer serves a valid discovery
// document before an auth provider pointing at it is saved.
type IssuerVerifier interface {
	VerifyIssuer(ctx context.Context, issuer string) error
}
