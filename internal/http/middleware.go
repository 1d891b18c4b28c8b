package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
	userIDKey contextKey = "userID"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly resolves the caller from the X-User-ID header and rejects the
// request unless that uid is an admin of the season in the path.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			http.Error(w, "Missing X-User-ID header", http.StatusUnauthorized)
			return
		}

		seasonID := r.PathValue("seasonID")
		isAdmin, err := s.Store.IsSeasonAdmin(seasonID, uid)
		if err != nil {
			log.Error("Failed to check season admin", "error", err, "seasonID", seasonID, "uid", uid)
			http.Error(w, "Failed to check permissions", http.StatusInternalServerError)
			return
		}
		if !isAdmin {
			log.Warn("Rejected non-admin mutation", "seasonID", seasonID, "uid", uid)
			http.Error(w, "Not a season admin", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// userIDFromContext returns the authenticated uid set by adminOnly.
func userIDFromContext(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey).(string)
	return uid
}
