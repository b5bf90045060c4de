package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/ports"
)

// maxErrorBody bounds how much of a failed response is read when looking for a message.
const maxErrorBody = 64 << 10

// Config holds the settings shared by every request-scoped client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	SiteHeader  string
	GuestHeader string
}

// Metrics are optional upstream collectors; nil fields are skipped.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: method, status
	RequestDuration *prometheus.HistogramVec // labels: method
}

// Factory builds request-scoped clients. It is safe for concurrent use.
type Factory struct {
	baseURL     *url.URL
	httpClient  *http.Client
	siteHeader  string
	guestHeader string
	metrics     Metrics
	logger      *logrus.Logger
}

func NewFactory(cfg *Config, httpClient *http.Client, metrics Metrics, logger *logrus.Logger) (*Factory, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid commerce base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("commerce base url must be absolute, got %q", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	siteHeader := cfg.SiteHeader
	if siteHeader == "" {
		siteHeader = "X-Site-Code"
	}
	guestHeader := cfg.GuestHeader
	if guestHeader == "" {
		guestHeader = "X-Guest-Id"
	}
	return &Factory{
		baseURL:     base,
		httpClient:  httpClient,
		siteHeader:  siteHeader,
		guestHeader: guestHeader,
		metrics:     metrics,
		logger:      logger,
	}, nil
}

// ForIdentity returns a client bound to one inbound request's identity.
func (f *Factory) ForIdentity(id ports.Identity) ports.APIClient {
	return &Client{factory: f, identity: id}
}

// Client performs single-attempt JSON calls against the commerce API.
type Client struct {
	factory  *Factory
	identity ports.Identity
}

func (c *Client) SiteCode() string { return c.identity.SiteCode }

func (c *Client) Get(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (*ports.APIResponse, error) {
	target, absolute, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	c.applyHeaders(req, absolute)

	start := time.Now()
	resp, err := c.factory.httpClient.Do(req)
	if err != nil {
		c.observe(method, "error", start)
		if c.factory.logger != nil {
			c.factory.logger.WithFields(logrus.Fields{"method": method, "path": path}).WithError(err).Warn("commerce api request failed")
		}
		return nil, fmt.Errorf("commerce api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.observe(method, strconv.Itoa(resp.StatusCode), start)

	result := &ports.APIResponse{Status: resp.StatusCode, Header: resp.Header}
	if c.factory.logger != nil {
		c.factory.logger.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   resp.StatusCode,
			"site":     c.identity.SiteCode,
			"duration": time.Since(start).String(),
		}).Debug("commerce api call")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return result, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return result, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return result, nil
}

// resolve joins relative paths onto the base URL and reports whether path was absolute.
func (c *Client) resolve(path string) (string, bool, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", false, fmt.Errorf("invalid api path %q: %w", path, err)
	}
	if u.IsAbs() {
		return u.String(), true, nil
	}
	base := *c.factory.baseURL
	rel := strings.TrimLeft(u.Path, "/")
	base.Path = strings.TrimRight(base.Path, "/") + "/" + rel
	base.RawQuery = u.RawQuery
	return base.String(), false, nil
}

func (c *Client) applyHeaders(req *http.Request, absolute bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.identity.SiteCode != "" {
		req.Header.Set(c.factory.siteHeader, c.identity.SiteCode)
	}
	if c.identity.GuestID != "" {
		req.Header.Set(c.factory.guestHeader, c.identity.GuestID)
	}
	// The bearer token only ever goes to our own API.
	if !absolute && c.identity.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.identity.Token)
	}
}

func (c *Client) observe(method, status string, start time.Time) {
	if c.factory.metrics.RequestsTotal != nil {
		c.factory.metrics.RequestsTotal.WithLabelValues(method, status).Inc()
	}
	if c.factory.metrics.RequestDuration != nil {
		c.factory.metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
}

// decodeError builds an APIError from a failed response, preferring the JSON message.
func decodeError(resp *http.Response) error {
	apiErr := &ports.APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil && strings.TrimSpace(payload.Message) != "" {
		apiErr.Message = payload.Message
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}
