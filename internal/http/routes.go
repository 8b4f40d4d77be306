package httpx

import (
	"log/slog"
	"net/http"

	"github.com/goiam/console/internal/ports"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions SessionServiceInterface
	Scope    ScopeServiceInterface
	Entities EntityServiceInterface
	Lists    ListGateway
	Audit    AuditTrailReader    // Optional: audit trail endpoint is omitted when nil
	Recorder ports.AuditRecorder // Optional
	Login    LoginConfig
	Cookies  SessionCookieConfig
	Logger   *slog.Logger // Optional
}

// NewRouter creates and configures the console's HTTP handler.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:     services.Sessions,
		Login:   services.Login,
		Cookies: services.Cookies,
		Audit:   services.Recorder,
		Logger:  logger,
	}
	projectHandlers := &ProjectHandlers{Svc: services.Scope}
	entityHandlers := &EntityHandlers{Lists: services.Lists, Svc: services.Entities}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("GET /login", authHandlers.BeginLogin)
	mux.HandleFunc("GET /verify", authHandlers.Verify)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/me", authHandlers.Me)

	// Everything under /api runs with the stored snapshot in context.
	api := http.NewServeMux()
	api.HandleFunc("GET /api/projects", projectHandlers.List)
	api.HandleFunc("POST /api/projects", projectHandlers.Create)
	api.HandleFunc("PUT /api/projects/{id}", projectHandlers.Update)
	api.HandleFunc("POST /api/projects/select", projectHandlers.Select)

	api.HandleFunc("GET /api/users", entityHandlers.ListUsers)
	api.HandleFunc("POST /api/users", entityHandlers.CreateUser)
	api.HandleFunc("PUT /api/users/{id}", entityHandlers.UpdateUser)
	api.HandleFunc("PUT /api/users/{id}/roles", entityHandlers.UpdateUserRoles)
	api.HandleFunc("PUT /api/users/{id}/policies", entityHandlers.UpdateUserPolicies)
	api.HandleFunc("POST /api/users/{id}/transfer-ownership/{newOwner}", entityHandlers.TransferOwnership)
	api.HandleFunc("POST /api/users/{id}/copy-resources/{target}", entityHandlers.CopyResources)

	api.HandleFunc("GET /api/roles", entityHandlers.ListRoles)
	api.HandleFunc("POST /api/roles", entityHandlers.CreateRole)
	api.HandleFunc("PUT /api/roles/{id}", entityHandlers.UpdateRole)

	api.HandleFunc("GET /api/resources", entityHandlers.SearchResources)
	api.HandleFunc("POST /api/resources", entityHandlers.CreateResource)
	api.HandleFunc("PUT /api/resources/{id}", entityHandlers.UpdateResource)

	api.HandleFunc("GET /api/clients", entityHandlers.ListClients)
	api.HandleFunc("POST /api/clients", entityHandlers.CreateClient)
	api.HandleFunc("POST /api/clients/service-account", entityHandlers.CreateServiceAccount)
	api.HandleFunc("PUT /api/clients/{id}", entityHandlers.UpdateClient)

	api.HandleFunc("GET /api/auth-providers", entityHandlers.ListAuthProviders)
	api.HandleFunc("POST /api/auth-providers", entityHandlers.CreateAuthProvider)
	api.HandleFunc("PUT /api/auth-providers/{id}", entityHandlers.UpdateAuthProvider)

	api.HandleFunc("GET /api/policies", entityHandlers.ListPolicies)

	if services.Audit != nil {
		auditHandlers := &AuditHandlers{Svc: services.Audit}
		api.HandleFunc("GET /api/audit", auditHandlers.Trail)
	}

	mux.Handle("/api/", WithSnapshot(services.Sessions)(api))

	var handler http.Handler = mux
	handler = WithSession(services.Cookies)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
