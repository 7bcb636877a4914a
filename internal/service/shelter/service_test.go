package shelter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
)

func ds(id int64) *int64 { return &id }

func TestCreate_InOfficersSecretariat(t *testing.T) {
	repo := new(mocks.ShelterRepository)
	svc := NewService(repo)
	officer := domain.Actor{Role: domain.RoleGovernmentOfficer, DivisionalSecretariatID: ds(2)}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shelter) bool {
		return s.DivisionalSecretariatID == 2 && s.Available == 40 && s.Status == domain.ShelterOpen
	})).Return(nil).Once()

	_, err := svc.Create(context.Background(), officer, domain.CreateShelterInput{Name: "Maha Vidyalaya", Size: 40, Address: "Main St"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_OfficerWithoutSecretariat(t *testing.T) {
	svc := NewService(new(mocks.ShelterRepository))
	_, err := svc.Create(context.Background(), domain.Actor{Role: domain.RoleGovernmentOfficer}, domain.CreateShelterInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdate_OtherSecretariatIsNotFound(t *testing.T) {
	repo := new(mocks.ShelterRepository)
	svc := NewService(repo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Shelter{ID: 4, DivisionalSecretariatID: 3}, nil).Once()

	_, err := svc.Update(context.Background(), domain.Actor{Role: domain.RoleGovernmentOfficer, DivisionalSecretariatID: ds(2)}, 4, domain.UpdateShelterInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_AvailableBoundedBySize(t *testing.T) {
	repo := new(mocks.ShelterRepository)
	svc := NewService(repo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Shelter{ID: 4, DivisionalSecretariatID: 2, Size: 10, Available: 5}, nil).Once()

	avail := 11
	_, err := svc.Update(context.Background(), domain.Actor{Role: domain.RoleGovernmentOfficer, DivisionalSecretariatID: ds(2)}, 4,
		domain.UpdateShelterInput{Available: &avail})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList(t *testing.T) {
	repo := new(mocks.ShelterRepository)
	svc := NewService(repo)
	repo.On("List", mock.Anything, (*int64)(nil)).Return([]domain.Shelter{{ID: 1}, {ID: 2}}, nil).Once()
	repo.On("List", mock.Anything, ds(2)).Return([]domain.Shelter{{ID: 2}}, nil).Once()

	all, err := svc.List(context.Background(), domain.Actor{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(context.Background(), domain.Actor{Role: domain.RoleGramaSevaka, DivisionalSecretariatID: ds(2)})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
