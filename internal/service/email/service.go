package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/resend/resend-go/v3"

	"flowx-relief/internal/config"
	"flowx-relief/internal/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName, locale string) error
	SendDonationReceivedEmail(ctx context.Context, toEmail, donorName string, donationID int64) error
	SendDonationStatusEmail(ctx context.Context, toEmail, donorName string, donationID int64, status string) error
}

type service struct {
	client    *resend.Client
	config    *config.Config
	templates *template.Template
	send      func(params *resend.SendEmailRequest) error
}

func NewService(cfg *config.Config) Service {
	s := &service{
		config:    cfg,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
		s.send = func(params *resend.SendEmailRequest) error {
			_, err := s.client.Emails.Send(params)
			return err
		}
	} else {
		s.send = func(params *resend.SendEmailRequest) error {
			log.Printf("email disabled, dropping %q to %v", params.Subject, params.To)
			return nil
		}
	}
	return s
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("FlowX Relief <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}
	return s.send(params)
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName, locale string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: i18n.Translate(locale, "EMAIL_WELCOME_SUBJECT"),
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, data.Title, "welcome", data)
}

func (s *service) SendDonationReceivedEmail(ctx context.Context, toEmail, donorName string, donationID int64) error {
	data := struct {
		Title      string
		Name       string
		DonationID int64
	}{
		Title:      i18n.Translate(i18n.DefaultLocale, "EMAIL_DONATION_RECEIVED_SUBJECT"),
		Name:       donorName,
		DonationID: donationID,
	}
	return s.sendEmail(toEmail, data.Title, "donation_received", data)
}

func (s *service) SendDonationStatusEmail(ctx context.Context, toEmail, donorName string, donationID int64, status string) error {
	label := i18n.StatusLabel(i18n.DefaultLocale, status)
	color := "#10b981"
	if status == "rejected" {
		color = "#ef4444"
	}

	data := struct {
		Title      string
		Name       string
		DonationID int64
		Status     string
		Color      string
	}{
		Title:      i18n.Translatef(i18n.DefaultLocale, "EMAIL_DONATION_STATUS_SUBJECT", label),
		Name:       donorName,
		DonationID: donationID,
		Status:     label,
		Color:      color,
	}
	return s.sendEmail(toEmail, data.Title, "donation_status", data)
}
