package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/floodctx"
	"flowx-relief/internal/service/scope"
)

const cacheTTL = 5 * time.Minute

type Stats struct {
	FloodID *int64              `json:"flood_id"`
	Counts  domain.StatusCounts `json:"counts"`
}

type DonationStats struct {
	Current domain.StatusCounts `json:"current"`
	Overall domain.StatusCounts `json:"overall"`
}

type Service interface {
	// GetStats counts the actor's requests by status for the current flood.
	GetStats(ctx context.Context, actor domain.Actor, kind *domain.RequestKind) (*Stats, error)
	GetDonationStats(ctx context.Context) (*DonationStats, error)
}

type service struct {
	requestRepo repository.RequestRepository
	floods      floodctx.Resolver
	redis       *redis.Client
}

func NewService(requestRepo repository.RequestRepository, floods floodctx.Resolver, redis *redis.Client) Service {
	return &service{
		requestRepo: requestRepo,
		floods:      floods,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context, actor domain.Actor, kind *domain.RequestKind) (*Stats, error) {
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	if kind != nil && !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be victim, shelter, donation or subsidy")
	}

	floodID, err := s.currentFloodID(ctx)
	if err != nil {
		return nil, err
	}
	if floodID == nil {
		return &Stats{}, nil
	}

	cacheKey := "dashboard:stats:" + sc.Key() + ":" + kindKey(kind) + ":" + strconv.FormatInt(*floodID, 10)
	var stats Stats
	if s.readCache(ctx, cacheKey, &stats) {
		return &stats, nil
	}

	counts, err := s.requestRepo.CountByStatus(ctx, sc, kind, floodID)
	if err != nil {
		return nil, err
	}
	stats = Stats{FloodID: floodID, Counts: counts}
	s.writeCache(ctx, cacheKey, stats)
	return &stats, nil
}

func (s *service) GetDonationStats(ctx context.Context) (*DonationStats, error) {
	const cacheKey = "dashboard:donations"
	var stats DonationStats
	if s.readCache(ctx, cacheKey, &stats) {
		return &stats, nil
	}

	kind := domain.KindDonation
	all := domain.Scope{Level: domain.ScopeAll}

	overall, err := s.requestRepo.CountByStatus(ctx, all, &kind, nil)
	if err != nil {
		return nil, err
	}
	stats.Overall = overall

	floodID, err := s.currentFloodID(ctx)
	if err != nil {
		return nil, err
	}
	if floodID != nil {
		current, err := s.requestRepo.CountByStatus(ctx, all, &kind, floodID)
		if err != nil {
			return nil, err
		}
		stats.Current = current
	}

	s.writeCache(ctx, cacheKey, stats)
	return &stats, nil
}

// currentFloodID returns nil when no flood has been recorded yet.
func (s *service) currentFloodID(ctx context.Context) (*int64, error) {
	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if errors.Is(err, domain.ErrNoFlood) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flood.ID, nil
}

func (s *service) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dst) == nil
}

func (s *service) writeCache(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		log.Printf("dashboard: cache %s: %v", key, err)
	}
}

func kindKey(kind *domain.RequestKind) string {
	if kind == nil {
		return "any"
	}
	return string(*kind)
}
