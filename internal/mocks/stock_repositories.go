package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type SubsidyRepository struct {
	mock.Mock
}

func (m *SubsidyRepository) Create(ctx context.Context, subsidy *domain.Subsidy) error {
	args := m.Called(ctx, subsidy)
	return args.Error(0)
}

func (m *SubsidyRepository) GetByID(ctx context.Context, id int64) (*domain.Subsidy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subsidy), args.Error(1)
}

func (m *SubsidyRepository) ListByFlood(ctx context.Context, floodID int64) ([]domain.Subsidy, error) {
	args := m.Called(ctx, floodID)
	return args.Get(0).([]domain.Subsidy), args.Error(1)
}

func (m *SubsidyRepository) Update(ctx context.Context, subsidy *domain.Subsidy) error {
	args := m.Called(ctx, subsidy)
	return args.Error(0)
}

func (m *SubsidyRepository) AdjustStock(ctx context.Context, id int64, delta int) (bool, error) {
	args := m.Called(ctx, id, delta)
	return args.Bool(0), args.Error(1)
}

type ShelterRepository struct {
	mock.Mock
}

func (m *ShelterRepository) Create(ctx context.Context, shelter *domain.Shelter) error {
	args := m.Called(ctx, shelter)
	return args.Error(0)
}

func (m *ShelterRepository) GetByID(ctx context.Context, id int64) (*domain.Shelter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shelter), args.Error(1)
}

func (m *ShelterRepository) List(ctx context.Context, divisionalSecretariatID *int64) ([]domain.Shelter, error) {
	args := m.Called(ctx, divisionalSecretariatID)
	return args.Get(0).([]domain.Shelter), args.Error(1)
}

func (m *ShelterRepository) Update(ctx context.Context, shelter *domain.Shelter) error {
	args := m.Called(ctx, shelter)
	return args.Error(0)
}

func (m *ShelterRepository) ReserveSlot(ctx context.Context, shelterID, divisionalSecretariatID int64) (bool, error) {
	args := m.Called(ctx, shelterID, divisionalSecretariatID)
	return args.Bool(0), args.Error(1)
}

func (m *ShelterRepository) CreateAssignment(ctx context.Context, assignment *domain.ShelterAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}
