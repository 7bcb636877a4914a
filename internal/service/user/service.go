package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
)

var ErrCannotModifySelf = fmt.Errorf("cannot deactivate your own account: %w", domain.ErrConflict)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	SetActive(ctx context.Context, actor domain.Actor, id uuid.UUID, active bool) error
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			user.Phone = nil
		} else {
			user.Phone = input.Phone
		}
	}
	if input.Locale != nil {
		user.Locale = *input.Locale
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive enables or disables an account. Admin only.
func (s *service) SetActive(ctx context.Context, actor domain.Actor, id uuid.UUID, active bool) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if actor.ID == id && !active {
		return ErrCannotModifySelf
	}
	return s.userRepo.SetActive(ctx, id, active)
}
