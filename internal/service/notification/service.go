package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.Page[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyRequestSubmitted(ctx context.Context, req *domain.Request) error
	NotifyStatusChanged(ctx context.Context, req *domain.Request, from domain.RequestStatus) error
	NotifyAnnouncement(ctx context.Context, a *domain.Announcement) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.Page[domain.Notification], error) {
	params.Normalize()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}
	return domain.NewPage(notifications, params, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// NotifyRequestSubmitted tells the staff responsible for the request's area.
func (s *service) NotifyRequestSubmitted(ctx context.Context, req *domain.Request) error {
	gnID := int64(0)
	if req.GNDivisionID != nil {
		gnID = *req.GNDivisionID
	}
	staff, err := s.userRepo.ListStaffFor(ctx, gnID, req.DivisionalSecretariatID)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}

	for _, user := range staff {
		kind := i18n.Translate(user.Locale, "KIND_"+string(req.Kind))
		s.create(ctx, user.ID, domain.NotifRequestSubmitted,
			i18n.Translate(user.Locale, "NOTIF_SUBMITTED_TITLE"),
			i18n.Translatef(user.Locale, "NOTIF_SUBMITTED_BODY", kind, req.ID),
			requestData(req, ""))
	}
	return nil
}

// NotifyStatusChanged tells the request's owner in their language. Donations
// have no account behind them, so the donor is emailed instead.
func (s *service) NotifyStatusChanged(ctx context.Context, req *domain.Request, from domain.RequestStatus) error {
	if req.Kind == domain.KindDonation {
		if req.DonorEmail == nil || *req.DonorEmail == "" || s.emailSvc == nil {
			return nil
		}
		name := ""
		if req.DonorName != nil {
			name = *req.DonorName
		}
		return s.emailSvc.SendDonationStatusEmail(ctx, *req.DonorEmail, name, req.ID, string(req.Status))
	}

	recipients, err := s.owners(ctx, req)
	if err != nil {
		return err
	}

	for _, user := range recipients {
		kind := i18n.Translate(user.Locale, "KIND_"+string(req.Kind))
		status := i18n.StatusLabel(user.Locale, string(req.Status))
		s.create(ctx, user.ID, domain.NotifStatusChanged,
			i18n.Translate(user.Locale, "NOTIF_STATUS_CHANGED_TITLE"),
			i18n.Translatef(user.Locale, "NOTIF_STATUS_CHANGED_BODY", kind, req.ID, status),
			requestData(req, from))
	}
	return nil
}

func (s *service) owners(ctx context.Context, req *domain.Request) ([]domain.User, error) {
	if req.RequestedBy != nil {
		user, err := s.userRepo.GetByID(ctx, *req.RequestedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to get requester: %w", err)
		}
		if user != nil && user.Role == domain.RoleCitizen {
			return []domain.User{*user}, nil
		}
	}
	if req.HouseID == nil {
		return nil, nil
	}
	users, err := s.userRepo.ListByHouse(ctx, *req.HouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return users, nil
}

func (s *service) NotifyAnnouncement(ctx context.Context, a *domain.Announcement) error {
	ids, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	data, _ := json.Marshal(map[string]interface{}{
		"announcement_id": a.ID,
		"emergency_level": a.EmergencyLevel,
	})
	for _, id := range ids {
		if id == a.AuthorID {
			continue
		}
		s.create(ctx, id, domain.NotifAnnouncement, a.Title, a.Description, data)
	}
	return nil
}

func (s *service) create(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, title, message string, data json.RawMessage) {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create notification for user %s: %v", userID, err)
	}
}

func requestData(req *domain.Request, from domain.RequestStatus) json.RawMessage {
	m := map[string]interface{}{
		"request_id": req.ID,
		"kind":       req.Kind,
		"status":     req.Status,
	}
	if from != "" {
		m["previous_status"] = from
	}
	data, _ := json.Marshal(m)
	return data
}
