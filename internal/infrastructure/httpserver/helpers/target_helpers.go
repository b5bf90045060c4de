package helpers

import (
	"net/url"
	"strings"
)

// SafeRedirectTarget returns raw when it is a local absolute path, else fallback.
// Scheme-relative ("//host") and backslash tricks are rejected so form fields
// cannot send shoppers off-site.
func SafeRedirectTarget(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return raw
}
