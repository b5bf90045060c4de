package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

type SessionMiddleware struct {
	sessions   *session.Manager
	apiFactory ports.APIClientFactory
	logger     *logrus.Logger
	now        func() time.Time
}

func NewSessionMiddleware(sessions *session.Manager, apiFactory ports.APIClientFactory, logger *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, apiFactory: apiFactory, logger: logger, now: time.Now}
}

// LoadSession loads the session cookie, guarantees a guest id, drops expired
// customer tokens and builds the request's API client. The cookie is written
// back just before the response header goes out.
func (m *SessionMiddleware) LoadSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			sess := m.sessions.Load(req)

			if sess.GuestID() == "" {
				sess.SetGuestID(uuid.NewString())
			}

			customer, signedIn := sess.Customer()
			if signedIn && TokenExpired(customer.Token, m.now()) {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"customer_id": customer.ID}).Debug("customer token expired; signing out")
				}
				sess.ClearCustomer()
				sess.PutToast(domain.Info("Your session has expired. Please sign in again."))
				signedIn = false
			}

			siteCode := ""
			if s, ok := helpers.GetSiteRaw(c); ok {
				siteCode = s.Code
			}
			id := ports.Identity{SiteCode: siteCode, GuestID: sess.GuestID()}
			if signedIn {
				id.Token = customer.Token
			}

			helpers.SetSession(c, sess)
			helpers.SetAPIClient(c, m.apiFactory.ForIdentity(id))

			c.Response().Before(func() {
				if err := sess.Save(req, c.Response()); err != nil && m.logger != nil {
					m.logger.WithError(err).Error("failed to save session")
				}
			})
			return next(c)
		}
	}
}

// RefreshAPIClient rebuilds the request's API client after the session identity
// changed (login, logout) so later calls in the same request use it.
func (m *SessionMiddleware) RefreshAPIClient(c echo.Context) ports.APIClient {
	sess, ok := helpers.GetSessionRaw(c)
	if !ok {
		api, _ := helpers.GetAPIClientRaw(c)
		return api
	}
	id := ports.Identity{GuestID: sess.GuestID()}
	if s, ok := helpers.GetSiteRaw(c); ok {
		id.SiteCode = s.Code
	}
	if customer, ok := sess.Customer(); ok {
		id.Token = customer.Token
	}
	api := m.apiFactory.ForIdentity(id)
	helpers.SetAPIClient(c, api)
	return api
}
