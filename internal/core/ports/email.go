package ports

import (
	"context"
)

// ContactMessage is a storefront contact form submission.
type ContactMessage struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Subject string `form:"subject" validate:"required,max=150"`
	Message string `form:"message" validate:"required,max=5000"`
}

// EmailService defines the interface for outbound email
type EmailService interface {
	SendContactMessage(ctx context.Context, siteName string, msg *ContactMessage) error
}
