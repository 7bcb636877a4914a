package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
)

func TestUpdateProfile(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewService(repo)
	id := uuid.New()
	phone := "0771234567"

	repo.On("GetByID", mock.Anything, id).Return(&domain.User{ID: id, FullName: "Old", Phone: &phone, Locale: "en"}, nil).Once()
	repo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.FullName == "Old" && u.Phone == nil && u.Locale == "si"
	})).Return(nil).Once()

	empty, si := "", "si"
	user, err := svc.UpdateProfile(context.Background(), id, domain.UpdateProfileInput{Phone: &empty, Locale: &si})
	require.NoError(t, err)
	assert.Equal(t, "si", user.Locale)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_Missing(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil).Once()
	_, err := NewService(repo).UpdateProfile(context.Background(), uuid.New(), domain.UpdateProfileInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetActive(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	target := uuid.New()

	repo := new(mocks.UserRepository)
	repo.On("SetActive", mock.Anything, target, false).Return(nil).Once()
	svc := NewService(repo)

	require.NoError(t, svc.SetActive(context.Background(), admin, target, false))
	assert.ErrorIs(t, svc.SetActive(context.Background(), admin, admin.ID, false), ErrCannotModifySelf)
	assert.ErrorIs(t, svc.SetActive(context.Background(), domain.Actor{Role: domain.RoleGovernmentOfficer}, target, false), domain.ErrForbidden)
	repo.AssertExpectations(t)
}
