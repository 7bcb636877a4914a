package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
)

type RequestService struct {
	mock.Mock
}

func (m *RequestService) Create(ctx context.Context, actor domain.Actor, input domain.CreateRequestInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestService) CreateDonation(ctx context.Context, input domain.CreateDonationInput) (*domain.Request, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestService) CreateSubsidyRequest(ctx context.Context, actor domain.Actor, subsidyID int64, input domain.CreateSubsidyRequestInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, subsidyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Request, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestService) ListForActor(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.Request, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *RequestService) Transition(ctx context.Context, actor domain.Actor, id int64, input domain.TransitionInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
