// Package mocks provides gomock implementations of the console's ports for testing.
//
// Mocks are generated with go.uber.org/mock (gomock). To regenerate after an
// interface change, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSnapshotStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "sid-1").Return(snap, nil)
package mocks

// Generate mock for SnapshotStore interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=snapshot_store_mock.go github.com/goiam/console/internal/ports SnapshotStore

// Generate mock for AuditRecorder interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=audit_recorder_mock.go github.com/goiam/console/internal/ports AuditRecorder

// Generate mock for IssuerVerifier interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=issuer_verifier_mock.go github.com/goiam/console/internal/ports IssuerVerifier
