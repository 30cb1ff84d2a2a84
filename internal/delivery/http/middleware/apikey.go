package middleware

import (
	"context"
	"net/http"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

type contextKey string

const (
	projectContextKey     contextKey = "project"
	environmentContextKey contextKey = "environment"
)

// APIKeyAuth resolves the X-API-Key header against the project store. The key is
// environment-scoped: which of the project's key pair matched decides whether the
// request runs LIVE or SANDBOX.
func APIKeyAuth(store domain.ProjectStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			http.Error(w, `{"error":"X-API-Key header required"}`, http.StatusUnauthorized)
			return
		}

		project, environment, err := store.ResolveAPIKey(apiKey)
		if err != nil {
			http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), projectContextKey, project)
		ctx = context.WithValue(ctx, environmentContextKey, environment)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ProjectFromContext(ctx context.Context) (*domain.Project, domain.Environment, bool) {
	project, ok := ctx.Value(projectContextKey).(*domain.Project)
	if !ok {
		return nil, "", false
	}
	environment, ok := ctx.Value(environmentContextKey).(domain.Environment)
	if !ok {
		return nil, "", false
	}
	return project, environment, true
}
