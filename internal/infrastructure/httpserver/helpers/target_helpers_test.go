package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

func TestSafeRedirectTarget(t *testing.T) {
	cases := map[string]string{
		"":                         "/cart",
		"/products/desk?variant=2": "/products/desk?variant=2",
		"products":                 "/cart",
		"//evil.example.com":       "/cart",
		"https://evil.example.com": "/cart",
		`/\evil.example.com`:       "/cart",
		"  /checkout ":             "/checkout",
	}
	for in, want := range cases {
		require.Equal(t, want, helpers.SafeRedirectTarget(in, "/cart"), "input %q", in)
	}
}
