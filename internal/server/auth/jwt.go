// Package auth issues and checks the bearer tokens the form-side forwarder
// presents to the intake webhook.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

// Claims identifies the sender of submissions, e.g. "intake-form".
type Claims struct {
	jwt.RegisteredClaims
	Source string `json:"source"`
}

func GenerateToken(source string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Source: source,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates an HS256 token and returns its sender. Expired tokens
// yield ErrTokenExpired, anything else unusable ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Source == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Source, nil
}

type contextKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// token's source in the request context.
func Middleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			source, err := ParseToken(strings.TrimPrefix(header, common.BearerPrefix), secretKey)
			if err != nil {
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, source)))
		})
	}
}

// SourceFrom returns the authenticated sender, or "".
func SourceFrom(ctx context.Context) string {
	s, _ := ctx.Value(contextKey{}).(string)
	return s
}
