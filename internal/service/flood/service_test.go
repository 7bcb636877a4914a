package flood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/floodctx"
)

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func f64(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	details := []domain.FloodDetail{
		{Date: day("2025-06-03"), RiverLevel: 4, RainFall: 10, WaterRisingRate: 0.5, FloodArea: 2},
		{Date: day("2025-06-01"), RiverLevel: 2, RainFall: 30, WaterRisingRate: -0.5, FloodArea: 2},
		{Date: day("2025-06-02"), RiverLevel: 6, RainFall: 20, WaterRisingRate: 0, FloodArea: 2},
	}

	stats := Summarize(details)

	assert.Equal(t, 3, stats.Samples)
	assert.Equal(t, day("2025-06-01"), *stats.From)
	assert.Equal(t, day("2025-06-03"), *stats.To)
	assert.InDelta(t, 4.0, stats.RiverLevel.Mean, 1e-9)
	assert.Equal(t, 2.0, stats.RiverLevel.Min)
	assert.Equal(t, 6.0, stats.RiverLevel.Max)
	assert.InDelta(t, 8.0/3.0, stats.RiverLevel.Variance, 1e-9)
	assert.InDelta(t, 200.0/3.0, stats.RainFall.Variance, 1e-9)
	assert.Zero(t, stats.FloodArea.Variance)
	assert.InDelta(t, -0.5, stats.WaterRisingRate.Min, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.Samples)
	assert.Nil(t, stats.From)
}

func admin() domain.Actor {
	return domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
}

func newService(repo *mocks.FloodRepository) *service {
	svc, _ := newServiceWithTx(repo)
	return svc
}

func newServiceWithTx(repo *mocks.FloodRepository) (*service, *mocks.UnitOfWork) {
	audit := new(mocks.AuditService)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	uow := &mocks.UnitOfWork{Repos: repository.TxRepositories{Floods: repo}}
	svc := NewService(repo, uow, floodctx.NewResolver(repo), audit).(*service)
	svc.now = func() time.Time { return day("2025-06-10") }
	return svc, uow
}

func TestCreate_ClosesActiveFlood(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("CloseActive", ctx, day("2025-06-10")).Return(int64(1), nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(f *domain.Flood) bool {
		return f.Status == domain.FloodActive && f.StartDate.Equal(day("2025-06-09")) && f.Name == "Kalu Ganga"
	})).Return(nil).Once()

	flood, err := svc.Create(ctx, admin(), domain.CreateFloodInput{Name: "Kalu Ganga", StartDate: "2025-06-09"})
	require.NoError(t, err)
	assert.Equal(t, domain.FloodActive, flood.Status)
	repo.AssertExpectations(t)
}

func TestCreate_InsertFailureRollsBackClose(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc, uow := newServiceWithTx(repo)
	ctx := context.Background()

	repo.On("CloseActive", ctx, day("2025-06-10")).Return(int64(1), nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()

	flood, err := svc.Create(ctx, admin(), domain.CreateFloodInput{Name: "Kalu Ganga", StartDate: "2025-06-09"})
	require.Error(t, err)
	assert.Nil(t, flood)
	assert.Equal(t, 1, uow.Calls)
	assert.False(t, uow.Committed)
	repo.AssertExpectations(t)
}

func TestCreate_AuditFailureDoesNotFailCreate(t *testing.T) {
	repo := new(mocks.FloodRepository)
	audit := new(mocks.AuditService)
	audit.On("Record", mock.Anything, mock.Anything).Return(errors.New("audit down")).Once()
	uow := &mocks.UnitOfWork{Repos: repository.TxRepositories{Floods: repo}}
	svc := NewService(repo, uow, floodctx.NewResolver(repo), audit).(*service)
	svc.now = func() time.Time { return day("2025-06-10") }
	ctx := context.Background()

	repo.On("CloseActive", ctx, mock.Anything).Return(int64(0), nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.Create(ctx, admin(), domain.CreateFloodInput{Name: "Nilwala", StartDate: "2025-06-09"})
	require.NoError(t, err)
	assert.True(t, uow.Committed)
	audit.AssertExpectations(t)
}

func TestCreate_AdminOnly(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)

	_, err := svc.Create(context.Background(), domain.Actor{Role: domain.RoleGovernmentOfficer}, domain.CreateFloodInput{Name: "x", StartDate: "2025-06-09"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "CloseActive", mock.Anything, mock.Anything)
}

func TestUpdate_RejectsEndBeforeStart(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(3)).Return(&domain.Flood{ID: 3, StartDate: day("2025-06-01")}, nil).Once()
	end := "2025-05-30"

	_, err := svc.Update(ctx, admin(), 3, domain.UpdateFloodInput{EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_Partial(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)
	ctx := context.Background()
	over := domain.FloodOver
	input := domain.UpdateFloodInput{Status: &over}

	repo.On("GetByID", ctx, int64(3)).Return(&domain.Flood{ID: 3, Status: domain.FloodActive}, nil).Once()
	repo.On("Update", ctx, int64(3), input).Return(nil).Once()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Flood{ID: 3, Status: domain.FloodOver}, nil).Once()

	flood, err := svc.Update(ctx, admin(), 3, input)
	require.NoError(t, err)
	assert.Equal(t, domain.FloodOver, flood.Status)
	repo.AssertExpectations(t)
}

func TestStatistics_UnknownFlood(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil).Once()

	_, err := svc.Statistics(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertDetail(t *testing.T) {
	repo := new(mocks.FloodRepository)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(3)).Return(&domain.Flood{ID: 3}, nil).Once()
	repo.On("UpsertDetail", ctx, mock.MatchedBy(func(d *domain.FloodDetail) bool {
		return d.FloodID == 3 && d.Date.Equal(day("2025-06-02")) && d.RiverLevel == 5.2
	})).Return(nil).Once()

	_, err := svc.UpsertDetail(ctx, admin(), 3, domain.FloodDetailInput{
		Date: "2025-06-02", RiverLevel: f64(5.2), RainFall: f64(80), WaterRisingRate: f64(0.3), FloodArea: f64(12),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
