package middleware

import (
	"net/http"

	"hogar-conectado/internal/domain"

	"go.uber.org/zap"
)

// RequireAdmin ensures the authenticated staff member has the admin role.
// It must run after AuthMiddleware.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				logger.Warn("Role not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if role != domain.RoleAdmin {
				logger.Warn("Non-admin staff attempted to access admin endpoint",
					zap.String("role", role),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
