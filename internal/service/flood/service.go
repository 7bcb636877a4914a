package flood

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/audit"
	"flowx-relief/internal/service/floodctx"
)

const dateLayout = "2006-01-02"

type Service interface {
	List(ctx context.Context) ([]domain.Flood, error)
	Current(ctx context.Context) (*domain.Flood, error)
	Get(ctx context.Context, id int64) (*domain.Flood, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreateFloodInput) (*domain.Flood, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateFloodInput) (*domain.Flood, error)
	UpsertDetail(ctx context.Context, actor domain.Actor, id int64, input domain.FloodDetailInput) (*domain.FloodDetail, error)
	ListDetails(ctx context.Context, id int64) ([]domain.FloodDetail, error)
	Statistics(ctx context.Context, id int64) (*domain.FloodStatistics, error)
}

type service struct {
	floodRepo repository.FloodRepository
	uow       repository.UnitOfWork
	resolver  floodctx.Resolver
	auditSvc  audit.Service
	now       func() time.Time
}

func NewService(floodRepo repository.FloodRepository, uow repository.UnitOfWork, resolver floodctx.Resolver, auditSvc audit.Service) Service {
	return &service{
		floodRepo: floodRepo,
		uow:       uow,
		resolver:  resolver,
		auditSvc:  auditSvc,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]domain.Flood, error) {
	return s.floodRepo.List(ctx)
}

func (s *service) Current(ctx context.Context) (*domain.Flood, error) {
	return s.resolver.ResolveCurrentOrLatest(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Flood, error) {
	flood, err := s.floodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flood == nil {
		return nil, domain.ErrNotFound
	}
	return flood, nil
}

// Create opens a new active flood. Any flood still active is closed as of
// today in the same transaction.
func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateFloodInput) (*domain.Flood, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, domain.NewValidationError("start_date", "must be a date in YYYY-MM-DD format")
	}

	flood := &domain.Flood{
		Name:        input.Name,
		Status:      domain.FloodActive,
		Description: input.Description,
		StartDate:   start,
		CreatedBy:   &actor.ID,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if _, err := repos.Floods.CloseActive(ctx, s.now()); err != nil {
			return fmt.Errorf("close active floods: %w", err)
		}
		return repos.Floods.Create(ctx, flood)
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, domain.AuditCreateFlood, flood.ID, nil, flood)
	return flood, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateFloodInput) (*domain.Flood, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Status != nil && *input.Status != domain.FloodActive && *input.Status != domain.FloodOver {
		return nil, domain.NewValidationError("status", "must be one of active, over")
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.EndDate != nil {
		end, err := time.Parse(dateLayout, *input.EndDate)
		if err != nil {
			return nil, domain.NewValidationError("end_date", "must be a date in YYYY-MM-DD format")
		}
		if end.Before(before.StartDate) {
			return nil, domain.NewValidationError("end_date", "must not be before the start date")
		}
	}

	if err := s.floodRepo.Update(ctx, id, input); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, domain.AuditUpdateFlood, id, before, after)
	return after, nil
}

func (s *service) UpsertDetail(ctx context.Context, actor domain.Actor, id int64, input domain.FloodDetailInput) (*domain.FloodDetail, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be a date in YYYY-MM-DD format")
	}

	detail := &domain.FloodDetail{
		FloodID:         id,
		Date:            day,
		RiverLevel:      *input.RiverLevel,
		RainFall:        *input.RainFall,
		WaterRisingRate: *input.WaterRisingRate,
		FloodArea:       *input.FloodArea,
	}
	if err := s.floodRepo.UpsertDetail(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) ListDetails(ctx context.Context, id int64) ([]domain.FloodDetail, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.floodRepo.ListDetails(ctx, id)
}

func (s *service) Statistics(ctx context.Context, id int64) (*domain.FloodStatistics, error) {
	details, err := s.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := Summarize(details)
	stats.FloodID = id
	return &stats, nil
}

func (s *service) record(ctx context.Context, actor domain.Actor, action string, id int64, before, after interface{}) {
	if s.auditSvc == nil {
		return
	}
	err := s.auditSvc.Record(ctx, audit.Entry{
		UserID:     actor.ID,
		Action:     action,
		EntityType: "flood",
		EntityID:   strconv.FormatInt(id, 10),
		OldValue:   before,
		NewValue:   after,
		Meta:       domain.RequestMetaFrom(ctx),
	})
	if err != nil {
		log.Printf("Failed to audit flood %d: %v", id, err)
	}
}
