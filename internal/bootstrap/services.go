package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/goiam/console/config"
	"github.com/goiam/console/internal/adapters/oidc"
	redisstore "github.com/goiam/console/internal/adapters/redis"
	"github.com/goiam/console/internal/data"
	"github.com/goiam/console/internal/gateway"
	"github.com/goiam/console/internal/service"
)

// ServiceDeps carries the shared infrastructure the services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the console's constructed services.
type ServiceContainer struct {
	Gateway  *gateway.Client
	Sessions *service.SessionService
	Scope    *service.ScopeService
	Entities *service.EntityService
	Audit    *service.AuditService
}

// NewServices wires the upstream gateway, the snapshot store, and the
// application services together.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.Upstream.APIURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build gateway client: %w", err)
	}

	store := redisstore.NewSnapshotStore(deps.RedisClient)
	audit := service.NewAuditService(data.NewAuditRepo(deps.DB))

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Store:   store,
		Gateway: gw,
		Config: service.SessionServiceConfig{
			SessionTTL: cfg.Auth.SessionTTL,
			Audit:      audit,
			Logger:     logger,
		},
	})

	scope := service.NewScopeService(service.ScopeServiceOptions{
		Store:   store,
		Gateway: gw,
		Config: service.ScopeServiceConfig{
			Audit:  audit,
			Logger: logger,
		},
	})

	entityCfg := service.EntityServiceConfig{
		Audit:  audit,
		Logger: logger,
	}
	if cfg.Upstream.VerifyProviderIssuers {
		entityCfg.Issuers = oidc.NewIssuerVerifier(oidc.Config{Timeout: cfg.Upstream.Timeout})
	} else {
		logger.Info("auth provider issuer verification disabled")
	}
	entities := service.NewEntityService(service.EntityServiceOptions{
		Gateway: gw,
		Config:  entityCfg,
	})

	return ServiceContainer{
		Gateway:  gw,
		Sessions: sessions,
		Scope:    scope,
		Entities: entities,
		Audit:    audit,
	}, nil
}

// LoginScopes splits the configured OAuth scope string.
func LoginScopes(cfg *config.AppConfig) []string {
	return strings.Fields(cfg.Auth.Scope)
}
