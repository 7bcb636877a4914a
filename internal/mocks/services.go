package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/audit"
)

type AuditService struct {
	mock.Mock
}

func (m *AuditService) Record(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditService) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func (m *AuditService) ListByEntity(ctx context.Context, entityType, entityID string, params domain.PaginationParams) (domain.Page[domain.AuditLog], error) {
	args := m.Called(ctx, entityType, entityID, params)
	return args.Get(0).(domain.Page[domain.AuditLog]), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.Page[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.Page[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyRequestSubmitted(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *NotificationService) NotifyStatusChanged(ctx context.Context, req *domain.Request, from domain.RequestStatus) error {
	args := m.Called(ctx, req, from)
	return args.Error(0)
}

func (m *NotificationService) NotifyAnnouncement(ctx context.Context, a *domain.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName, locale string) error {
	args := m.Called(ctx, toEmail, fullName, locale)
	return args.Error(0)
}

func (m *EmailService) SendDonationReceivedEmail(ctx context.Context, toEmail, donorName string, donationID int64) error {
	args := m.Called(ctx, toEmail, donorName, donationID)
	return args.Error(0)
}

func (m *EmailService) SendDonationStatusEmail(ctx context.Context, toEmail, donorName string, donationID int64, status string) error {
	args := m.Called(ctx, toEmail, donorName, donationID, status)
	return args.Error(0)
}
