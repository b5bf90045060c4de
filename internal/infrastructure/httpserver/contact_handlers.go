package httpserver

import (
	"github.com/labstack/echo/v4"

	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const contactPath = "/contact"

func (s *Server) showContact(c echo.Context) error {
	msg := ports.ContactMessage{}
	if customer, ok := helpers.GetCustomerFromContext(c); ok {
		msg.Name = customer.DisplayName()
		msg.Email = customer.Email
	}
	return s.render(c, "contact", "Contact us", msg)
}

func (s *Server) submitContact(c echo.Context) error {
	if s.emailSvc == nil {
		return s.redirectWithToast(c, domain.Error("The contact form is not available right now. Please email us instead."), contactPath)
	}
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	var msg ports.ContactMessage
	if err := bindForm(c, &msg); err != nil {
		return s.failWithToast(c, err, contactPath)
	}
	if err := s.emailSvc.SendContactMessage(c.Request().Context(), site.Name, &msg); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("failed to send contact message")
		}
		return s.redirectWithToast(c, domain.Error("We could not send your message. Please try again later."), contactPath)
	}
	return s.redirectWithToast(c, domain.Success("Thanks for reaching out! We will get back to you soon."), contactPath)
}
