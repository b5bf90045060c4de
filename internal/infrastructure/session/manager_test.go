package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/storefront/configs"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(&config.SessionConfig{
		Secret:     "test-secret-that-is-long-enough",
		CookieName: "sf",
		MaxAge:     time.Hour,
	}, nil)
	require.NoError(t, err)
	return m
}

// roundTrip saves s and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, r *http.Request, s *session.Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, s.Save(r, rec))
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestNewManager_RejectsShortSecret(t *testing.T) {
	_, err := session.NewManager(&config.SessionConfig{Secret: "short", CookieName: "sf"}, nil)
	require.Error(t, err)
}

func TestSession_ToastIsReadOnce(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	s := m.Load(req)
	require.True(t, s.IsNew())

	s.PutToast(domain.Success("Added to cart"))
	next := roundTrip(t, req, s)

	s = m.Load(next)
	toast, ok := s.PopToast()
	require.True(t, ok)
	require.Equal(t, domain.ToastSuccess, toast.Type)
	require.Equal(t, "Added to cart", toast.Message)

	_, ok = s.PopToast()
	require.False(t, ok)

	after := roundTrip(t, next, s)
	_, ok = m.Load(after).PopToast()
	require.False(t, ok)
}

func TestSession_LatestToastWins(t *testing.T) {
	m := newManager(t)
	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.PutToast(domain.Info("first"))
	s.PutToast(domain.Error("second"))

	toast, ok := s.PopToast()
	require.True(t, ok)
	require.Equal(t, "second", toast.Message)
	_, ok = s.PopToast()
	require.False(t, ok)
}

func TestSession_HasToastTracksPendingToast(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Load(req)
	require.False(t, s.HasToast())

	s.PutToast(domain.Info("Your session has expired. Please sign in again."))
	require.True(t, s.HasToast())

	s = m.Load(roundTrip(t, req, s))
	require.True(t, s.HasToast())
	_, ok := s.PopToast()
	require.True(t, ok)
	require.False(t, s.HasToast())
}

func TestSession_CustomerAndGuestPersist(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Load(req)

	_, ok := s.Customer()
	require.False(t, ok)

	s.SetGuestID("guest-1")
	s.SetCustomer(domain.Customer{ID: "c1", Email: "a@example.com", Token: "tok"})

	s = m.Load(roundTrip(t, req, s))
	require.False(t, s.IsNew())
	require.Equal(t, "guest-1", s.GuestID())
	c, ok := s.Customer()
	require.True(t, ok)
	require.Equal(t, "tok", c.Token)

	s.ClearCustomer()
	_, ok = s.Customer()
	require.False(t, ok)
	require.Equal(t, "guest-1", s.GuestID())
}

func TestSession_TamperedCookieYieldsFreshSession(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf", Value: "not-a-valid-cookie"})

	s := m.Load(req)
	require.True(t, s.IsNew())
	require.Empty(t, s.GuestID())
}

func TestSession_DestroyExpiresCookie(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Load(req)
	s.SetCustomer(domain.Customer{ID: "c1", Token: "tok"})
	s.Destroy()

	rec := httptest.NewRecorder()
	require.NoError(t, s.Save(req, rec))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].MaxAge < 0)
}
