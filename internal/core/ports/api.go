package ports

import (
	"context"
	"errors"
	"net/http"
)

// APIClient is a request-scoped client for the upstream commerce API. Implementations
// carry the site, guest and customer identity of a single inbound request.
type APIClient interface {
	Get(ctx context.Context, path string, out any) (*APIResponse, error)
	Post(ctx context.Context, path string, body, out any) (*APIResponse, error)
	Put(ctx context.Context, path string, body, out any) (*APIResponse, error)
	Patch(ctx context.Context, path string, body, out any) (*APIResponse, error)
	Delete(ctx context.Context, path string, out any) (*APIResponse, error)
	// SiteCode is the storefront the client is scoped to; caches key on it.
	SiteCode() string
}

// Identity is the per-request caller context injected into upstream calls.
type Identity struct {
	SiteCode string
	GuestID  string
	Token    string
}

// APIClientFactory builds request-scoped clients.
type APIClientFactory interface {
	ForIdentity(id Identity) APIClient
}

// APIResponse describes a completed upstream call.
type APIResponse struct {
	Status int
	Header http.Header
}

// APIError is returned for every non-2xx upstream response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
