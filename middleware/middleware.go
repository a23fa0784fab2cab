package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/services"
	"github.com/Chandanpatidar24/Project-Management/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const claimsKey contextKey = "claims"

// JWTAuthMiddleware validates the Bearer token, rejects revoked tokens and
// stores the verified claims in the request context. Handlers read the caller
// identity from there and pass it explicitly into the service layer.
func JWTAuthMiddleware(blacklist *services.TokenBlacklist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := utils.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			revoked, err := blacklist.IsRevoked(r.Context(), tokenStr)
			if err != nil {
				logging.Logger.Errorf("Event ID: JWT_AUTH_BLACKLIST_ERROR, Description: Failed to check token revocation for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if revoked {
				logging.Logger.Warnf("Event ID: JWT_AUTH_REVOKED_TOKEN, Description: Revoked token presented for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified token claims stored by the
// middleware.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.Claims)
	return claims, ok
}

// CallerIDFromContext returns the caller's user id from the verified claims.
func CallerIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
