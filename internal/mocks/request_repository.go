package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) GetInScope(ctx context.Context, id int64, scope domain.Scope) (*domain.Request, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) List(ctx context.Context, scope domain.Scope, filter domain.RequestFilter) ([]domain.Request, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, id int64, expected domain.RequestStatus, scope domain.Scope, changes domain.RequestChanges) (bool, error) {
	args := m.Called(ctx, id, expected, scope, changes)
	return args.Bool(0), args.Error(1)
}

func (m *RequestRepository) HasActiveRequest(ctx context.Context, houseID int64, kind domain.RequestKind, floodID int64, statuses []domain.RequestStatus) (bool, error) {
	args := m.Called(ctx, houseID, kind, floodID, statuses)
	return args.Bool(0), args.Error(1)
}

func (m *RequestRepository) CountByStatus(ctx context.Context, scope domain.Scope, kind *domain.RequestKind, floodID *int64) (domain.StatusCounts, error) {
	args := m.Called(ctx, scope, kind, floodID)
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}
