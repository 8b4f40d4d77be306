package service

import (
	"context"
	"fmt"

	"github.com/goiam/console/internal/domain/model"
)

// AuditStore persists audit events.
type AuditStore interface {
	Record(ctx context.Context, req model.RecordAuditRequest) (*model.AuditEvent, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]model.AuditEvent, error)
}

// AuditService records operator actions. It satisfies ports.AuditRecorder.
type AuditService struct {
	store AuditStore
}

// NewAuditService constructs a new AuditService.
func NewAuditService(store AuditStore) *AuditService {
	if store == nil {
		panic("audit service requires a store")
	}
	return &AuditService{store: store}
}

// Record persists one audit event.
func (s *AuditService) Record(ctx context.Context, req *model.RecordAuditRequest) error {
	if req == nil {
		return fmt.Errorf("audit request is required")
	}
	if _, err := s.store.Record(ctx, *req); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

// Trail returns the most recent events for a session, newest first.
func (s *AuditService) Trail(ctx context.Context, sessionID string, limit int) ([]model.AuditEvent, error) {
	return s.store.ListBySession(ctx, sessionID, limit)
}
