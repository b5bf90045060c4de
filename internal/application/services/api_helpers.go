package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/avatarctic/storefront/internal/core/ports"
)

// ErrInvalidInput is returned before any upstream call when a request cannot be valid.
var ErrInvalidInput = errors.New("invalid input")

// genericFailure is shown when an upstream call fails without a usable message.
const genericFailure = "Something went wrong. Please try again."

// envelope is the upstream wrapper for single resources and plain lists.
type envelope[T any] struct {
	Data T `json:"data"`
}

func getData[T any](ctx context.Context, api ports.APIClient, path string) (T, error) {
	var env envelope[T]
	_, err := api.Get(ctx, path, &env)
	return env.Data, err
}

func postData[T any](ctx context.Context, api ports.APIClient, path string, body any) (T, error) {
	var env envelope[T]
	_, err := api.Post(ctx, path, body, &env)
	return env.Data, err
}

func patchData[T any](ctx context.Context, api ports.APIClient, path string, body any) (T, error) {
	var env envelope[T]
	_, err := api.Patch(ctx, path, body, &env)
	return env.Data, err
}

func deleteData[T any](ctx context.Context, api ports.APIClient, path string) (T, error) {
	var env envelope[T]
	_, err := api.Delete(ctx, path, &env)
	return env.Data, err
}

// resourcePath joins escaped segments onto base, e.g. resourcePath("/products", slug).
func resourcePath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// ErrorMessage turns an error from any service into text fit for a toast.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return genericFailure
}

// ValidationError carries a user-facing message for input rejected locally.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(msg string) error { return &ValidationError{Message: msg} }
