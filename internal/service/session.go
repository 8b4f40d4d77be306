package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goiam/console/internal/adapters/redis"
	"github.com/goiam/console/internal/domain/model"
	"github.com/goiam/console/internal/domain/session"
	"github.com/goiam/console/internal/gateway"
	"github.com/goiam/console/internal/ports"
)

// IdentityGateway is the slice of the GoIAM API the session service needs.
type IdentityGateway interface {
	Me(ctx context.Context, token string) (*model.DashboardSelf, error)
	VerifyCode(ctx context.Context, code string) (string, error)
}

// SessionServiceConfig carries tuning knobs and optional collaborators.
type SessionServiceConfig struct {
	SessionTTL time.Duration
	Audit      ports.AuditRecorder // Optional
	Logger     *slog.Logger        // Optional
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store   ports.SnapshotStore
	Gateway IdentityGateway
	Config  SessionServiceConfig
}

// SessionService owns the session lifecycle: identity bootstrap with the
// staleness window, one-time code verification, and logout.
type SessionService struct {
	store   ports.SnapshotStore
	gw      IdentityGateway
	ttl     time.Duration
	audit   ports.AuditRecorder
	logger  *slog.Logger
	flights singleflight.Group
	now     func() time.Time
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Store == nil {
		panic("session service requires a snapshot store")
	}
	if opts.Gateway == nil {
		panic("session service requires an identity gateway")
	}
	ttl := opts.Config.SessionTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  opts.Store,
		gw:     opts.Gateway,
		ttl:    ttl,
		audit:  opts.Config.Audit,
		logger: logger,
		now:    time.Now,
	}
}

// load returns the stored snapshot for sessionID, or a fresh unauthenticated
// one when the store has none.
func (s *SessionService) load(ctx context.Context, sessionID string) (session.Snapshot, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err == nil {
		return snap, nil
	}
	if errors.Is(err, redis.ErrNotFound) {
		return session.Snapshot{
			ID:        sessionID,
			ExpiresAt: s.now().Add(s.ttl),
		}, nil
	}
	return session.Snapshot{}, fmt.Errorf("load session %s: %w", sessionID, err)
}

// Bootstrap establishes the session's identity state. A snapshot refreshed
// within the staleness window is returned as-is with no upstream call; force
// bypasses the window but never advances the staleness stamp, so a forced
// refresh does not extend the cache lifetime of a prior one.
//
// Concurrent bootstraps for the same session collapse into one upstream call.
func (s *SessionService) Bootstrap(ctx context.Context, sessionID string, force bool) (session.Snapshot, error) {
	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return session.Snapshot{}, err
	}

	if !force && snap.Fresh(s.now()) {
		return snap, nil
	}

	v, err, _ := s.flights.Do("bootstrap:"+sessionID, func() (any, error) {
		return s.refresh(ctx, snap, force)
	})
	out, _ := v.(session.Snapshot)
	return out, err
}

// refresh performs the actual upstream identity fetch and persists the result.
func (s *SessionService) refresh(ctx context.Context, snap session.Snapshot, force bool) (session.Snapshot, error) {
	me, err := s.gw.Me(ctx, snap.Token)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			snap.Reset(s.now())
			if saveErr := s.store.Save(ctx, snap); saveErr != nil {
				s.logger.WarnContext(ctx, "save session after auth failure", "session_id", snap.ID, "error", saveErr)
			}
			return snap, gateway.ErrUnauthorized
		}
		// The deployment state is unknown; report no client until a fetch succeeds.
		snap.ClientID = ""
		snap.LoadedState = true
		if saveErr := s.store.Save(ctx, snap); saveErr != nil {
			s.logger.WarnContext(ctx, "save session after fetch failure", "session_id", snap.ID, "error", saveErr)
		}
		return snap, fmt.Errorf("fetch identity: %w", err)
	}

	snap.ClientID = ""
	if me.Setup.ClientAdded {
		snap.ClientID = me.Setup.ClientID
	}
	snap.User = me.User
	snap.Verified = snap.Token != "" && me.User != nil
	snap.LoadedState = true
	if !force {
		snap.LastRefreshedAt = s.now()
	}
	if snap.ExpiresAt.IsZero() {
		snap.ExpiresAt = s.now().Add(s.ttl)
	}

	if err := s.store.Save(ctx, snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return snap, nil
}

// Verify exchanges the one-time login code for an access token, then performs
// a forced identity fetch with the new token. Repeated verifies with the same
// code collapse into one exchange.
func (s *SessionService) Verify(ctx context.Context, sessionID, code string) (session.Snapshot, error) {
	if code == "" {
		return session.Snapshot{}, errors.New("verification code is required")
	}

	v, err, _ := s.flights.Do("verify:"+sessionID, func() (any, error) {
		snap, err := s.load(ctx, sessionID)
		if err != nil {
			return session.Snapshot{}, err
		}

		token, err := s.gw.VerifyCode(ctx, code)
		if err != nil {
			s.record(ctx, &snap, model.AuditActionVerifyFailed, "", "")
			return session.Snapshot{}, err
		}

		snap.Token = token
		snap.Verified = true
		snap.ExpiresAt = s.now().Add(s.ttl)

		// Populate user and client state with the new token. The stamp is
		// advanced here: a just-verified session is as fresh as it gets.
		me, err := s.gw.Me(ctx, token)
		if err != nil {
			if saveErr := s.store.Save(ctx, snap); saveErr != nil {
				s.logger.WarnContext(ctx, "save session after verify", "session_id", snap.ID, "error", saveErr)
			}
			return session.Snapshot{}, fmt.Errorf("fetch identity after verify: %w", err)
		}
		if me.Setup.ClientAdded {
			snap.ClientID = me.Setup.ClientID
		}
		snap.User = me.User
		snap.LoadedState = true
		snap.LastRefreshedAt = s.now()

		if err := s.store.Save(ctx, snap); err != nil {
			return session.Snapshot{}, fmt.Errorf("save session %s: %w", snap.ID, err)
		}
		s.record(ctx, &snap, model.AuditActionVerified, "", "")
		return snap, nil
	})
	if err != nil {
		return session.Snapshot{}, err
	}
	return v.(session.Snapshot), nil
}

// Logout clears the authenticated state and backdates the staleness stamp so
// the next bootstrap hits the network. The project selection survives, and
// logging out twice is a no-op the second time.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	wasAuthenticated := snap.Token != ""
	snap.Reset(s.now())
	if snap.ExpiresAt.IsZero() {
		snap.ExpiresAt = s.now().Add(s.ttl)
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	if wasAuthenticated {
		s.record(ctx, &snap, model.AuditActionLogout, "", "")
	}
	return nil
}

// Current returns the stored snapshot without any refresh.
func (s *SessionService) Current(ctx context.Context, sessionID string) (session.Snapshot, error) {
	return s.load(ctx, sessionID)
}

// record writes an audit event, logging failures instead of propagating them.
func (s *SessionService) record(ctx context.Context, snap *session.Snapshot, action model.AuditAction, entity, entityID string) {
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
