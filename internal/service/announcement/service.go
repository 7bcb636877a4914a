package announcement

import (
	"context"
	"errors"
	"log"
	"strconv"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/audit"
	"flowx-relief/internal/service/floodctx"
	"flowx-relief/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateAnnouncementInput) (*domain.Announcement, error)
	// List pages through announcements of the current flood, or of every
	// flood when none has been recorded yet.
	List(ctx context.Context, params domain.PaginationParams) (domain.Page[domain.Announcement], error)
	Get(ctx context.Context, id int64) (*domain.Announcement, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type service struct {
	announcementRepo repository.AnnouncementRepository
	floods           floodctx.Resolver
	auditSvc         audit.Service
	notifSvc         notification.Service
}

func NewService(
	announcementRepo repository.AnnouncementRepository,
	floods floodctx.Resolver,
	auditSvc audit.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		announcementRepo: announcementRepo,
		floods:           floods,
		auditSvc:         auditSvc,
		notifSvc:         notifSvc,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateAnnouncementInput) (*domain.Announcement, error) {
	if !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !input.EmergencyLevel.IsValid() {
		return nil, domain.NewValidationError("emergency_level", "must be one of low, medium, high, critical")
	}
	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if err != nil {
		return nil, err
	}

	a := &domain.Announcement{
		Title:          input.Title,
		Description:    input.Description,
		EmergencyLevel: input.EmergencyLevel,
		AuthorID:       actor.ID,
		AuthorRole:     actor.Role,
		FloodID:        flood.ID,
	}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyAnnouncement(ctx, a); err != nil {
		log.Printf("announcement %d: notify: %v", a.ID, err)
	}
	return a, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.Page[domain.Announcement], error) {
	params.Normalize()

	var floodID *int64
	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	switch {
	case err == nil:
		floodID = &flood.ID
	case !errors.Is(err, domain.ErrNoFlood):
		return domain.Page[domain.Announcement]{}, err
	}

	items, total, err := s.announcementRepo.List(ctx, floodID, params)
	if err != nil {
		return domain.Page[domain.Announcement]{}, err
	}
	return domain.NewPage(items, params, total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// Delete is allowed for the author and for admins.
func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && a.AuthorID != actor.ID {
		return domain.ErrForbidden
	}
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := audit.Entry{
		UserID:     actor.ID,
		Action:     domain.AuditDeleteAnnouncement,
		EntityType: "announcement",
		EntityID:   strconv.FormatInt(id, 10),
		OldValue:   a,
		Meta:       domain.RequestMetaFrom(ctx),
	}
	if err := s.auditSvc.Record(ctx, entry); err != nil {
		log.Printf("announcement %d: audit: %v", id, err)
	}
	return nil
}
