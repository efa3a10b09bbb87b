package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"preflight/pkg/requestcontext"
)

// OperatorClaims carries the operator identity asserted by the upstream
// admin system. Only the subject is required; remediation stamps it onto
// resolved error rows.
type OperatorClaims struct {
	jwt.RegisteredClaims
}

// RequireOperator verifies a bearer token signed with the shared secret and
// injects the operator identity into the request context. Fix endpoints sit
// behind this so every automated resolution names who triggered it.
func RequireOperator(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

			claims := &OperatorClaims{}
			parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenUnverifiable
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				if logger != nil {
					logger.Warn("operator token rejected", "error", err)
				}
				writeAuthError(w, http.StatusUnauthorized, "invalid operator token")
				return
			}
			if claims.Subject == "" {
				writeAuthError(w, http.StatusUnauthorized, "operator token has no subject")
				return
			}

			ctx := requestcontext.WithOperatorID(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewOperatorToken mints a short-lived operator token. Used by tests and the
// local development workflow; production tokens come from the admin system.
func NewOperatorToken(secret, operatorID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: operatorID},
	})
	return token.SignedString([]byte(secret))
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
