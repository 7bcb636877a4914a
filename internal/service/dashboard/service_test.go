package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
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

func int64p(n int64) *int64 { return &n }

func TestGetStats_CachedPerScope(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := new(mocks.RequestRepository)
	svc := NewService(repo, fixedFlood{flood: &domain.Flood{ID: 4}}, client)
	sevaka := domain.Actor{Role: domain.RoleGramaSevaka, GNDivisionID: int64p(31)}
	sc := domain.Scope{Level: domain.ScopeGNDivision, ID: 31}

	repo.On("CountByStatus", mock.Anything, sc, (*domain.RequestKind)(nil), int64p(4)).
		Return(domain.StatusCounts{Pending: 3, Approved: 1, Total: 4}, nil).Once()

	first, err := svc.GetStats(context.Background(), sevaka, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Counts.Pending)

	second, err := svc.GetStats(context.Background(), sevaka, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "CountByStatus", 1)

	key := "dashboard:stats:grama_niladhari_division:31:any:4"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, cacheTTL, mr.TTL(key))

	mr.FastForward(cacheTTL + time.Second)
	repo.On("CountByStatus", mock.Anything, sc, (*domain.RequestKind)(nil), int64p(4)).
		Return(domain.StatusCounts{Pending: 2, Total: 2}, nil).Once()
	third, err := svc.GetStats(context.Background(), sevaka, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.Counts.Pending)
}

func TestGetStats_NoFlood(t *testing.T) {
	repo := new(mocks.RequestRepository)
	svc := NewService(repo, fixedFlood{err: domain.ErrNoFlood}, nil)

	stats, err := svc.GetStats(context.Background(), domain.Actor{Role: domain.RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Nil(t, stats.FloodID)
	assert.Zero(t, stats.Counts.Total)
	repo.AssertNotCalled(t, "CountByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStats_MissingScope(t *testing.T) {
	svc := NewService(new(mocks.RequestRepository), fixedFlood{flood: &domain.Flood{ID: 1}}, nil)
	_, err := svc.GetStats(context.Background(), domain.Actor{Role: domain.RoleCitizen}, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetDonationStats(t *testing.T) {
	repo := new(mocks.RequestRepository)
	svc := NewService(repo, fixedFlood{flood: &domain.Flood{ID: 7}}, nil)
	kind := domain.KindDonation
	all := domain.Scope{Level: domain.ScopeAll}

	repo.On("CountByStatus", mock.Anything, all, &kind, (*int64)(nil)).
		Return(domain.StatusCounts{New: 5, Collected: 5, Total: 10}, nil).Once()
	repo.On("CountByStatus", mock.Anything, all, &kind, int64p(7)).
		Return(domain.StatusCounts{New: 2, Total: 2}, nil).Once()

	stats, err := svc.GetDonationStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Overall.Total)
	assert.Equal(t, int64(2), stats.Current.Total)
}
