package handlers

import (
	"net/http"
	"strings"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
)

type MiddlewareProvider struct {
	verifier primary.IdentityVerifier
	logger   primary.Logger
}

func NewMiddlewareProvider(verifier primary.IdentityVerifier, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		verifier: verifier,
		logger:   logger,
	}
}

// Identity verifies the bearer token and passes the resolved user id down via
// the request context.
func (m *MiddlewareProvider) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := m.verifier.VerifyToken(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Token verification failed", "error", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
