package announcement

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

type fixedFlood struct {
	flood *domain.Flood
	err   error
}

func (f fixedFlood) ResolveCurrentOrLatest(ctx context.Context) (*domain.Flood, error) {
	return f.flood, f.err
}

type fixture struct {
	repo   *mocks.AnnouncementRepository
	audit  *mocks.AuditService
	notify *mocks.NotificationService
	svc    Service
}

func newFixture(floods fixedFlood) *fixture {
	f := &fixture{
		repo:   new(mocks.AnnouncementRepository),
		audit:  new(mocks.AuditService),
		notify: new(mocks.NotificationService),
	}
	f.svc = NewService(f.repo, floods, f.audit, f.notify)
	return f
}

func TestCreate(t *testing.T) {
	f := newFixture(fixedFlood{flood: &domain.Flood{ID: 9}})
	sevaka := domain.Actor{ID: uuid.New(), Role: domain.RoleGramaSevaka}

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Announcement) bool {
		return a.FloodID == 9 && a.AuthorID == sevaka.ID && a.AuthorRole == domain.RoleGramaSevaka
	})).Return(nil).Once()
	f.notify.On("NotifyAnnouncement", mock.Anything, mock.Anything).Return(nil).Once()

	a, err := f.svc.Create(context.Background(), sevaka, domain.CreateAnnouncementInput{
		Title: "Evacuate", Description: "River rising", EmergencyLevel: domain.EmergencyHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.FloodID)
	f.repo.AssertExpectations(t)
	f.notify.AssertExpectations(t)
}

func TestCreate_CitizenForbidden(t *testing.T) {
	f := newFixture(fixedFlood{flood: &domain.Flood{ID: 9}})
	_, err := f.svc.Create(context.Background(), domain.Actor{Role: domain.RoleCitizen}, domain.CreateAnnouncementInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_WithoutFloodListsEverything(t *testing.T) {
	f := newFixture(fixedFlood{err: domain.ErrNoFlood})
	params := domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize}
	f.repo.On("List", mock.Anything, (*int64)(nil), params).Return([]domain.Announcement{{ID: 1}}, int64(1), nil).Once()

	page, err := f.svc.List(context.Background(), domain.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestDelete(t *testing.T) {
	author := uuid.New()
	ctx := context.Background()

	t.Run("other staff forbidden", func(t *testing.T) {
		f := newFixture(fixedFlood{})
		f.repo.On("GetByID", ctx, int64(3)).Return(&domain.Announcement{ID: 3, AuthorID: author}, nil).Once()

		err := f.svc.Delete(ctx, domain.Actor{ID: uuid.New(), Role: domain.RoleGovernmentOfficer}, 3)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin deletes and is audited", func(t *testing.T) {
		f := newFixture(fixedFlood{})
		f.repo.On("GetByID", ctx, int64(3)).Return(&domain.Announcement{ID: 3, AuthorID: author}, nil).Once()
		f.repo.On("Delete", ctx, int64(3)).Return(nil).Once()
		f.audit.On("Record", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}, 3))
		f.audit.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(fixedFlood{})
		f.repo.On("GetByID", ctx, int64(4)).Return(nil, nil).Once()
		assert.ErrorIs(t, f.svc.Delete(ctx, domain.Actor{Role: domain.RoleAdmin}, 4), domain.ErrNotFound)
	})
}
