package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}

func (m *AnnouncementRepository) List(ctx context.Context, floodID *int64, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	args := m.Called(ctx, floodID, params)
	return args.Get(0).([]domain.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
