package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailConfig holds email service configuration
type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	ContactEmail   string
	StoreName      string
}

// Sender is the part of the SendGrid client the service uses.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService implements the EmailService interface
type EmailService struct {
	config    *EmailConfig
	logger    *logrus.Logger
	client    Sender
	templates map[string]*template.Template
	now       func() time.Time
}

// NewEmailService creates a new email service instance backed by SendGrid.
func NewEmailService(config *EmailConfig, logger *logrus.Logger) (*EmailService, error) {
	return NewEmailServiceWithSender(config, sendgrid.NewSendClient(config.SendGridAPIKey), logger)
}

// NewEmailServiceWithSender is NewEmailService with an explicit transport.
func NewEmailServiceWithSender(config *EmailConfig, sender Sender, logger *logrus.Logger) (*EmailService, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return &EmailService{
		config:    config,
		logger:    logger,
		client:    sender,
		templates: templates,
		now:       time.Now,
	}, nil
}

// loadTemplates loads all email templates from the embedded filesystem
func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		name := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		tmpl, err := template.ParseFS(templateFS, "templates/"+f.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f.Name(), err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(ctx context.Context, toName, to, replyTo, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)
	if replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		e.log().WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response != nil && response.StatusCode >= 300 {
		e.log().WithFields(logrus.Fields{
			"to":          to,
			"subject":     subject,
			"status_code": response.StatusCode,
		}).Error("Email provider rejected message")
		return fmt.Errorf("email provider returned status %d", response.StatusCode)
	}

	e.log().WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent successfully")

	return nil
}

func (e *EmailService) log() *logrus.Logger {
	if e.logger == nil {
		return logrus.StandardLogger()
	}
	return e.logger
}

// renderTemplate renders an email template with the provided data
func (e *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// ContactEmailData holds data for the contact templates
type ContactEmailData struct {
	StoreName string
	SiteName  string
	Name      string
	Email     string
	Subject   string
	Message   string
	SentAt    string
}

// SendContactMessage forwards a contact form submission to the store inbox and
// sends the shopper an acknowledgement. A failed acknowledgement is logged only.
func (e *EmailService) SendContactMessage(ctx context.Context, siteName string, msg *ports.ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("contact message is required")
	}
	data := ContactEmailData{
		StoreName: e.config.StoreName,
		SiteName:  siteName,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		SentAt:    e.now().UTC().Format(time.RFC1123),
	}

	htmlContent, err := e.renderTemplate("contact", data)
	if err != nil {
		return fmt.Errorf("failed to render contact email template: %w", err)
	}
	subject := fmt.Sprintf("[%s] %s", siteName, msg.Subject)
	if err := e.sendEmail(ctx, e.config.StoreName, e.config.ContactEmail, msg.Email, subject, htmlContent); err != nil {
		return err
	}

	ack, err := e.renderTemplate("contact_ack", data)
	if err != nil {
		return fmt.Errorf("failed to render contact acknowledgement template: %w", err)
	}
	if err := e.sendEmail(ctx, msg.Name, msg.Email, "", fmt.Sprintf("We received your message - %s", e.config.StoreName), ack); err != nil {
		e.log().WithError(err).Warn("contact acknowledgement not sent")
	}
	return nil
}
