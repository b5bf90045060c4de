package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/email"
)

type recordingSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (r *recordingSender) SendWithContext(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	r.sent = append(r.sent, m)
	if r.err != nil {
		return nil, r.err
	}
	status := r.status
	if status == 0 {
		status = 202
	}
	return &rest.Response{StatusCode: status}, nil
}

func newService(t *testing.T, s *recordingSender) *email.EmailService {
	t.Helper()
	svc, err := email.NewEmailServiceWithSender(&email.EmailConfig{
		FromEmail:    "noreply@shop.test",
		FromName:     "Shop",
		ContactEmail: "support@shop.test",
		StoreName:    "Shop",
	}, s, nil)
	require.NoError(t, err)
	return svc
}

var _ ports.EmailService = (*email.EmailService)(nil)

func TestSendContactMessage_ForwardsAndAcknowledges(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	err := svc.SendContactMessage(context.Background(), "EU", &ports.ContactMessage{
		Name: "Jane", Email: "jane@example.com", Subject: "Order <42>", Message: "Where is it?",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	inbox := sender.sent[0]
	require.Equal(t, "[EU] Order <42>", inbox.Subject)
	require.Equal(t, "support@shop.test", inbox.Personalizations[0].To[0].Address)
	require.Equal(t, "jane@example.com", inbox.ReplyTo.Address)
	var html string
	for _, c := range inbox.Content {
		if c.Type == "text/html" {
			html = c.Value
		}
	}
	require.Contains(t, html, "Order &lt;42&gt;")

	ack := sender.sent[1]
	require.Equal(t, "jane@example.com", ack.Personalizations[0].To[0].Address)
}

func TestSendContactMessage_ProviderFailure(t *testing.T) {
	svc := newService(t, &recordingSender{err: errors.New("network")})
	err := svc.SendContactMessage(context.Background(), "EU", &ports.ContactMessage{Name: "J", Email: "j@x.test", Subject: "s", Message: "m"})
	require.Error(t, err)

	svc = newService(t, &recordingSender{status: 401})
	err = svc.SendContactMessage(context.Background(), "EU", &ports.ContactMessage{Name: "J", Email: "j@x.test", Subject: "s", Message: "m"})
	require.ErrorContains(t, err, "401")
}
