package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the browser cookie carrying the console session id.
const SessionCookieName = "console_session"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionCookieConfig carries cookie attributes shared by the middleware and
// the auth handlers.
type SessionCookieConfig struct {
	Domain string
	TTL    time.Duration
}

// WithSession returns a middleware that guarantees every request carries a
// console session id. New browsers get a fresh id set as an HttpOnly cookie;
// either way the id is placed in the request context.
func WithSession(cfg SessionCookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				sid = c.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				setSessionCookie(w, r, sid, cfg)
			}

			ctx := SetSessionIDInContext(r.Context(), sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSnapshot returns a middleware that loads the stored session snapshot
// and places it in the request context. It never refreshes: handlers that
// need a bootstrap call it explicitly.
func WithSnapshot(svc SessionServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := GetSessionIDFromContext(r.Context())
			snap, err := svc.Current(r.Context(), sid)
			if err != nil {
				WriteServiceError(w, err)
				return
			}
			ctx := SetSnapshotInContext(r.Context(), &snap)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sid string, cfg SessionCookieConfig) {
	maxAge := 0
	if cfg.TTL > 0 {
		maxAge = int(cfg.TTL.Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sid,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
