package middleware

import (
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/pkg/utils"
)

// Claims carried by the bearer token. The role claim is attached by the
// auth provider and is the authorization source of truth; it is never
// re-derived from the profile row.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims validates the token signature and returns its claims.
func ParseClaims(tokenStr, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// CallerContext extracts claims when a valid bearer token is present
// and otherwise leaves the request anonymous. The callable command
// services decide authorization themselves, so an unauthenticated call
// still reaches them and fails with the command's own permission error.
func CallerContext(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				claims, err := ParseClaims(parts[1], secret)
				if err != nil {
					logger.Warn("Invalid bearer token on callable", zap.Error(err))
				} else if claims.Subject != "" {
					r = r.WithContext(utils.SetUserContext(r.Context(), claims.Subject, claims.Role))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Auth middleware validates the bearer token and puts uid + role into context.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := ParseClaims(parts[1], secret)
			if err != nil {
				logger.Warn("Invalid bearer token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			if claims.Subject == "" {
				utils.ResponseUnauthorized(w, "Token has no subject")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Subject, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
