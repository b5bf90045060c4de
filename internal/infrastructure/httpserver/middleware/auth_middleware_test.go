package middleware_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/middleware"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-only-key"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"expired", signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"expires now", signed(t, jwt.MapClaims{"exp": now.Unix()}), true},
		{"valid", signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), false},
		{"no exp claim", signed(t, jwt.MapClaims{"sub": "c-1"}), false},
		{"opaque token", "3f9a2c1e-opaque", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, middleware.TokenExpired(tc.token, now))
		})
	}
}
