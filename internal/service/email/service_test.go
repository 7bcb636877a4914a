package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/config"
)

func newCapturingService(t *testing.T, sendErr error) (*service, *[]*resend.SendEmailRequest) {
	t.Helper()
	svc := NewService(&config.Config{FromEmail: "relief@example.lk", Domain: "flowx.example.lk"}).(*service)
	var sent []*resend.SendEmailRequest
	svc.send = func(params *resend.SendEmailRequest) error {
		sent = append(sent, params)
		return sendErr
	}
	return svc, &sent
}

func TestSendDonationStatusEmail(t *testing.T) {
	svc, sent := newCapturingService(t, nil)

	err := svc.SendDonationStatusEmail(context.Background(), "donor@example.com", "Nimal", 42, "rejected")
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	msg := (*sent)[0]
	assert.Equal(t, []string{"donor@example.com"}, msg.To)
	assert.Equal(t, "FlowX Relief <relief@example.lk>", msg.From)
	assert.Contains(t, msg.Html, "#42")
	assert.Contains(t, msg.Html, "#ef4444")
	assert.Contains(t, msg.Html, "Nimal")
}

func TestSendWelcomeEmail_LinksToDomain(t *testing.T) {
	svc, sent := newCapturingService(t, nil)

	require.NoError(t, svc.SendWelcomeEmail(context.Background(), "a@b.lk", "Kumari", "en"))
	assert.Contains(t, (*sent)[0].Html, "https://flowx.example.lk/login")
}

func TestSendEmail_PropagatesTransportError(t *testing.T) {
	svc, _ := newCapturingService(t, errors.New("boom"))

	err := svc.SendDonationReceivedEmail(context.Background(), "a@b.lk", "X", 1)
	assert.EqualError(t, err, "boom")
}
