package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("intake-form", secret, time.Hour)
	require.NoError(t, err)

	source, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "intake-form", source)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("intake-form", []byte("secret"), -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret"))
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_Invalid(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("intake-form", []byte("right"), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(tok, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = ParseToken("not.a.jwt", []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	noSource, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = ParseToken(noSource, []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Source: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(none, []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	secret := []byte("s")
	var seen string
	h := Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SourceFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tok, err := GenerateToken("intake-form", secret, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + tok, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + tok, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "intake-form", seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}
