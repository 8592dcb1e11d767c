package middleware

import (
	"net/http"
	"strings"

	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

// bearerToken extracts the token from an Authorization header, empty when absent
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// RequireAuth validates the bearer token and puts the user id and
// normalized role into the request context
func RequireAuth(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing token")
				return
			}

			claims, err := utils.ParseToken(config, token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			userID, err := utils.UserIDFromClaims(claims)
			if err != nil {
				logger.Warn("Token subject is not a user id",
					zap.String("subject", claims.Subject),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects with 403 when the authenticated role is not in the
// allowed set. Must run after RequireAuth.
func RequireRoles(logger *zap.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			for _, a := range allowed {
				if strings.EqualFold(role, a) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role not allowed",
				zap.String("role", role),
				zap.Strings("allowed", allowed),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Forbidden")
		})
	}
}

// OptionalAuth attaches user context when a valid token is present and
// proceeds unauthenticated otherwise. It never rejects the request.
func OptionalAuth(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseToken(config, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := utils.UserIDFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
