package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type AreaRepository struct {
	mock.Mock
}

func (m *AreaRepository) ListDistricts(ctx context.Context) ([]domain.District, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.District), args.Error(1)
}

func (m *AreaRepository) ListDivisionalSecretariats(ctx context.Context, districtID int64) ([]domain.DivisionalSecretariat, error) {
	args := m.Called(ctx, districtID)
	return args.Get(0).([]domain.DivisionalSecretariat), args.Error(1)
}

func (m *AreaRepository) ListGNDivisions(ctx context.Context, divisionalSecretariatID int64) ([]domain.GNDivision, error) {
	args := m.Called(ctx, divisionalSecretariatID)
	return args.Get(0).([]domain.GNDivision), args.Error(1)
}

func (m *AreaRepository) Name(ctx context.Context, areaType domain.AreaType, id int64) (string, error) {
	args := m.Called(ctx, areaType, id)
	return args.String(0), args.Error(1)
}

func (m *AreaRepository) GetGNDivision(ctx context.Context, id int64) (*domain.GNDivision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GNDivision), args.Error(1)
}

func (m *AreaRepository) GetDivisionalSecretariat(ctx context.Context, id int64) (*domain.DivisionalSecretariat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DivisionalSecretariat), args.Error(1)
}

func (m *AreaRepository) HouseScope(ctx context.Context, houseID int64) (*domain.HouseScope, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HouseScope), args.Error(1)
}

func (m *AreaRepository) FindOrCreateHouse(ctx context.Context, gnDivisionID int64, houseNumber, address string) (int64, error) {
	args := m.Called(ctx, gnDivisionID, houseNumber, address)
	return args.Get(0).(int64), args.Error(1)
}
