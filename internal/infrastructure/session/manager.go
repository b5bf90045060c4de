package session

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"

	config "github.com/avatarctic/storefront/configs"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
)

const (
	keyCustomer = "customer"
	keyGuestID  = "guest_id"
	keyToast    = "toast"

	minSecretLength = 16
)

func init() {
	gob.Register(domain.Customer{})
	gob.Register(domain.Toast{})
}

// Manager loads and persists storefront sessions in a signed and encrypted cookie.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	logger *logrus.Logger
}

// NewManager derives independent signing and encryption keys from the configured secret.
func NewManager(cfg *config.SessionConfig, logger *logrus.Logger) (*Manager, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLength)
	}
	hashKey, err := deriveKey(cfg.Secret, "storefront session signing", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(cfg.Secret, "storefront session encryption", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	maxAge := int(cfg.MaxAge.Seconds())
	store.MaxAge(maxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: cfg.CookieName, logger: logger}, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// Load returns the session carried by r. A missing, tampered or undecodable
// cookie yields a fresh empty session.
func (m *Manager) Load(r *http.Request) *Session {
	raw, err := m.store.Get(r, m.name)
	if err != nil {
		if m.logger != nil {
			m.logger.WithFields(logrus.Fields{"path": r.URL.Path, "error": err.Error()}).Debug("discarding unreadable session cookie")
		}
		raw, _ = m.store.New(r, m.name)
		raw.IsNew = true
	}
	return &Session{raw: raw}
}

// Session is the request-scoped view over the session cookie. It is not safe
// for concurrent use; one request owns one Session.
type Session struct {
	raw *sessions.Session
}

func (s *Session) IsNew() bool { return s.raw.IsNew }

func (s *Session) Customer() (domain.Customer, bool) {
	c, ok := s.raw.Values[keyCustomer].(domain.Customer)
	return c, ok && c.Token != ""
}

func (s *Session) SetCustomer(c domain.Customer) { s.raw.Values[keyCustomer] = c }

func (s *Session) ClearCustomer() { delete(s.raw.Values, keyCustomer) }

func (s *Session) GuestID() string {
	id, _ := s.raw.Values[keyGuestID].(string)
	return id
}

func (s *Session) SetGuestID(id string) { s.raw.Values[keyGuestID] = id }

// PutToast replaces any pending toast with t.
func (s *Session) PutToast(t domain.Toast) {
	delete(s.raw.Values, keyToast)
	s.raw.AddFlash(t, keyToast)
}

// HasToast reports whether a toast is waiting to be shown.
func (s *Session) HasToast() bool {
	flashes, ok := s.raw.Values[keyToast].([]interface{})
	return ok && len(flashes) > 0
}

// PopToast returns the pending toast and removes it from the session.
func (s *Session) PopToast() (domain.Toast, bool) {
	for _, f := range s.raw.Flashes(keyToast) {
		if t, ok := f.(domain.Toast); ok {
			return t, true
		}
	}
	return domain.Toast{}, false
}

// Save writes the session cookie to w.
func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.raw.Save(r, w)
}

// Destroy drops every value and expires the cookie on the next Save.
func (s *Session) Destroy() {
	for k := range s.raw.Values {
		delete(s.raw.Values, k)
	}
	s.raw.Options.MaxAge = -1
}
