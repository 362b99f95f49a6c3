package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wallifypinho/blue-pay-panel/utils"

	"github.com/golang-jwt/jwt/v5"
)

type claimsKeyType string

// AdminClaimsKey carries the validated admin token claims (used by logout to
// revoke the presented token's jti).
const AdminClaimsKey = claimsKeyType("adminClaims")

// AdminClaims returns the claims stored by AdminAuthMiddleware, or nil.
func AdminClaims(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(AdminClaimsKey).(jwt.MapClaims)
	return claims
}

// AdminAuthMiddleware verifies the signed admin access token on every admin
// request. Possession of a token string is never enough on its own: the
// signature, expiry and revocation list are all checked.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ValidateAdminToken(tokenString)
		if err != nil {
			utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
