package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goiam/console/config"
	httpx "github.com/goiam/console/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer builds the router and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions: cfg.Services.Sessions,
		Scope:    cfg.Services.Scope,
		Entities: cfg.Services.Entities,
		Lists:    cfg.Services.Gateway,
		Audit:    cfg.Services.Audit,
		Recorder: cfg.Services.Audit,
		Login: httpx.LoginConfig{
			LoginURL: appCfg.Upstream.LoginURL,
			BaseURL:  appCfg.HTTP.BaseURL,
			Scopes:   LoginScopes(appCfg),
		},
		Cookies: httpx.SessionCookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			TTL:    appCfg.Auth.SessionTTL,
		},
		Logger: logger,
	})

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server, bounded by the
// configured shutdown timeout.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, cfg config.HTTPConfig, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
