package shelter

import (
	"context"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/scope"
)

type Service interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Shelter, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreateShelterInput) (*domain.Shelter, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateShelterInput) (*domain.Shelter, error)
}

type service struct {
	shelterRepo repository.ShelterRepository
}

func NewService(shelterRepo repository.ShelterRepository) Service {
	return &service{shelterRepo: shelterRepo}
}

// List returns every shelter for admins and the actor's secretariat otherwise.
func (s *service) List(ctx context.Context, actor domain.Actor) ([]domain.Shelter, error) {
	if actor.Role == domain.RoleAdmin {
		return s.shelterRepo.List(ctx, nil)
	}
	if actor.DivisionalSecretariatID == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.shelterRepo.List(ctx, actor.DivisionalSecretariatID)
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateShelterInput) (*domain.Shelter, error) {
	dsID, err := officerSecretariat(actor)
	if err != nil {
		return nil, err
	}

	shelter := &domain.Shelter{
		Name:                    input.Name,
		Size:                    input.Size,
		Address:                 input.Address,
		Available:               input.Size,
		Status:                  domain.ShelterOpen,
		DivisionalSecretariatID: dsID,
		Latitude:                input.Latitude,
		Longitude:               input.Longitude,
	}
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateShelterInput) (*domain.Shelter, error) {
	dsID, err := officerSecretariat(actor)
	if err != nil {
		return nil, err
	}
	shelter, err := s.shelterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelter == nil || shelter.DivisionalSecretariatID != dsID {
		return nil, domain.ErrNotFound
	}

	if input.Name != nil {
		shelter.Name = *input.Name
	}
	if input.Address != nil {
		shelter.Address = *input.Address
	}
	if input.Size != nil {
		shelter.Size = *input.Size
	}
	if input.Available != nil {
		shelter.Available = *input.Available
	}
	if input.Status != nil {
		shelter.Status = *input.Status
	}
	if input.Latitude != nil {
		shelter.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		shelter.Longitude = input.Longitude
	}
	if shelter.Available > shelter.Size {
		return nil, domain.NewValidationError("available", "must not exceed size")
	}

	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

func officerSecretariat(actor domain.Actor) (int64, error) {
	if actor.Role != domain.RoleGovernmentOfficer {
		return 0, domain.ErrForbidden
	}
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return 0, err
	}
	return sc.ID, nil
}
