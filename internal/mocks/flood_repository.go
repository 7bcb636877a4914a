package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type FloodRepository struct {
	mock.Mock
}

func (m *FloodRepository) FindActiveOn(ctx context.Context, day time.Time) (*domain.Flood, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flood), args.Error(1)
}

func (m *FloodRepository) FindLatest(ctx context.Context) (*domain.Flood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flood), args.Error(1)
}

func (m *FloodRepository) GetByID(ctx context.Context, id int64) (*domain.Flood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flood), args.Error(1)
}

func (m *FloodRepository) List(ctx context.Context) ([]domain.Flood, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flood), args.Error(1)
}

func (m *FloodRepository) Create(ctx context.Context, flood *domain.Flood) error {
	args := m.Called(ctx, flood)
	return args.Error(0)
}

func (m *FloodRepository) Update(ctx context.Context, id int64, input domain.UpdateFloodInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *FloodRepository) CloseActive(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FloodRepository) CloseExpired(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FloodRepository) UpsertDetail(ctx context.Context, detail *domain.FloodDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *FloodRepository) ListDetails(ctx context.Context, floodID int64) ([]domain.FloodDetail, error) {
	args := m.Called(ctx, floodID)
	return args.Get(0).([]domain.FloodDetail), args.Error(1)
}
