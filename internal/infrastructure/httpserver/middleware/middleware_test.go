package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/storefront/configs"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/domain/site"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
	"github.com/avatarctic/storefront/internal/infrastructure/sites"
	tmocks "github.com/avatarctic/storefront/test/mocks"
)

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRequireCustomer_AnonymousRedirectsToLogin(t *testing.T) {
	e := echo.New()
	m := middleware.NewAuthMiddleware(logrus.New())
	h := m.RequireCustomer()(ok)

	req := httptest.NewRequest(http.MethodGet, "/account/orders/42?tab=items", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/account/login?redirect_to=%2Faccount%2Forders%2F42%3Ftab%3Ditems", rec.Header().Get("Location"))
}

func requireCustomerWithSession(t *testing.T, pending *domain.Toast) *session.Session {
	t.Helper()
	mgr, err := session.NewManager(&config.SessionConfig{
		Secret:     "test-secret-that-is-long-enough",
		CookieName: "sf",
		MaxAge:     time.Hour,
	}, nil)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	sess := mgr.Load(req)
	if pending != nil {
		sess.PutToast(*pending)
	}
	helpers.SetSession(c, sess)

	h := middleware.NewAuthMiddleware(logrus.New()).RequireCustomer()(ok)
	require.NoError(t, h(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return sess
}

func TestRequireCustomer_KeepsPendingToast(t *testing.T) {
	expired := domain.Info("Your session has expired. Please sign in again.")
	sess := requireCustomerWithSession(t, &expired)

	toast, found := sess.PopToast()
	require.True(t, found)
	require.Equal(t, expired.Message, toast.Message)
}

func TestRequireCustomer_AddsSignInToast(t *testing.T) {
	sess := requireCustomerWithSession(t, nil)

	toast, found := sess.PopToast()
	require.True(t, found)
	require.Equal(t, "Please sign in to continue.", toast.Message)
}

func TestResolveSite_MaintenanceReturns503(t *testing.T) {
	registry, err := sites.New([]*site.Site{
		{Code: "main", Hosts: []string{"shop.example.com"}, Status: site.StatusActive},
		{Code: "outlet", Hosts: []string{"outlet.example.com"}, Status: site.StatusMaintenance},
	}, "main")
	require.NoError(t, err)

	e := echo.New()
	m := middleware.NewSiteMiddleware(registry, logrus.New())
	var resolved *site.Site
	h := m.ResolveSite()(func(c echo.Context) error {
		resolved, _ = helpers.GetSiteRaw(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "outlet.example.com:443"
	err = h(e.NewContext(req, httptest.NewRecorder()))
	var htErr *echo.HTTPError
	require.ErrorAs(t, err, &htErr)
	require.Equal(t, http.StatusServiceUnavailable, htErr.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "unknown.example.com"
	require.NoError(t, h(e.NewContext(req, httptest.NewRecorder())))
	require.Equal(t, "main", resolved.Code)
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	e := echo.New()
	m := middleware.NewRateLimitMiddleware(nil, logrus.New())
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/contact", nil), rec)

	require.NoError(t, m.Limit("contact")(ok)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_FailsOpenAndDeniesWithoutSession(t *testing.T) {
	e := echo.New()
	var keys []string
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, key string) (bool, int, int, time.Time, error) {
		keys = append(keys, key)
		if len(keys) == 1 {
			return false, 0, 3, time.Now(), errors.New("redis down")
		}
		return false, 0, 3, time.Now().Add(time.Minute), nil
	}}
	m := middleware.NewRateLimitMiddleware(limiter, logrus.New())
	h := m.Limit("login")(ok)

	req := httptest.NewRequest(http.MethodPost, "/account/login", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/account/login", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	err := h(e.NewContext(req, httptest.NewRecorder()))
	var htErr *echo.HTTPError
	require.ErrorAs(t, err, &htErr)
	require.Equal(t, http.StatusTooManyRequests, htErr.Code)
	require.Equal(t, []string{"login:203.0.113.7", "login:203.0.113.7"}, keys)
}

func TestMetrics_CountsRoutePatternAndHTTPErrorStatus(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests_total"}, []string{"method", "endpoint", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_request_duration_seconds"}, []string{"method", "endpoint"})
	m := middleware.NewMetricsMiddleware(total, duration)

	e := echo.New()
	e.Use(m.CollectHTTPMetrics())
	e.GET("/products/:slug", func(c echo.Context) error {
		if c.Param("slug") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/products/a", "/products/b", "/products/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 2.0, counterValue(t, total.WithLabelValues(http.MethodGet, "/products/:slug", "200")))
	require.Equal(t, 1.0, counterValue(t, total.WithLabelValues(http.MethodGet, "/products/:slug", "404")))
}
