package subsidy

import (
	"context"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/floodctx"
)

type Service interface {
	ListCurrent(ctx context.Context) ([]domain.Subsidy, error)
	ListByFlood(ctx context.Context, floodID int64) ([]domain.Subsidy, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreateSubsidyInput) (*domain.Subsidy, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateSubsidyInput) (*domain.Subsidy, error)
}

type service struct {
	subsidyRepo repository.SubsidyRepository
	floods      floodctx.Resolver
}

func NewService(subsidyRepo repository.SubsidyRepository, floods floodctx.Resolver) Service {
	return &service{subsidyRepo: subsidyRepo, floods: floods}
}

func (s *service) ListCurrent(ctx context.Context) ([]domain.Subsidy, error) {
	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if err != nil {
		return nil, err
	}
	return s.subsidyRepo.ListByFlood(ctx, flood.ID)
}

func (s *service) ListByFlood(ctx context.Context, floodID int64) ([]domain.Subsidy, error) {
	return s.subsidyRepo.ListByFlood(ctx, floodID)
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateSubsidyInput) (*domain.Subsidy, error) {
	if !actor.Role.IsStaff() || actor.Role == domain.RoleGramaSevaka {
		return nil, domain.ErrForbidden
	}
	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if err != nil {
		return nil, err
	}

	subsidy := &domain.Subsidy{
		FloodID:         flood.ID,
		Name:            input.Name,
		Category:        input.Category,
		Quantity:        input.Quantity,
		CurrentQuantity: input.Quantity,
		Status:          domain.SubsidyActive,
		CreatedBy:       &actor.ID,
	}
	if err := s.subsidyRepo.Create(ctx, subsidy); err != nil {
		return nil, err
	}
	return subsidy, nil
}

// Update edits a subsidy. A new total keeps what was already handed out and
// moves the remainder into current_quantity.
func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateSubsidyInput) (*domain.Subsidy, error) {
	if !actor.Role.IsStaff() || actor.Role == domain.RoleGramaSevaka {
		return nil, domain.ErrForbidden
	}
	subsidy, err := s.subsidyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subsidy == nil {
		return nil, domain.ErrNotFound
	}

	if input.Name != nil {
		subsidy.Name = *input.Name
	}
	if input.Category != nil {
		subsidy.Category = *input.Category
	}
	if input.Status != nil {
		subsidy.Status = *input.Status
	}
	if input.Quantity != nil {
		allocated := subsidy.Allocated()
		if *input.Quantity < allocated {
			return nil, domain.NewValidationError("quantity", "must not be below the quantity already allocated")
		}
		subsidy.Quantity = *input.Quantity
		subsidy.CurrentQuantity = *input.Quantity - allocated
	}

	if err := s.subsidyRepo.Update(ctx, subsidy); err != nil {
		return nil, err
	}
	return subsidy, nil
}
