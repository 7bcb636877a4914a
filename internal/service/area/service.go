package area

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
)

type Service interface {
	ListDistricts(ctx context.Context) ([]domain.District, error)
	ListDivisionalSecretariats(ctx context.Context, districtID int64) ([]domain.DivisionalSecretariat, error)
	ListGNDivisions(ctx context.Context, divisionalSecretariatID int64) ([]domain.GNDivision, error)
	// Name resolves an area id to its display name. Names never change, so
	// lookups are memoized without expiry.
	Name(ctx context.Context, areaType domain.AreaType, id int64) (string, error)
}

type service struct {
	areaRepo repository.AreaRepository
	redis    *redis.Client
	local    sync.Map
}

func NewService(areaRepo repository.AreaRepository, redis *redis.Client) Service {
	return &service{
		areaRepo: areaRepo,
		redis:    redis,
	}
}

func (s *service) ListDistricts(ctx context.Context) ([]domain.District, error) {
	return s.areaRepo.ListDistricts(ctx)
}

func (s *service) ListDivisionalSecretariats(ctx context.Context, districtID int64) ([]domain.DivisionalSecretariat, error) {
	return s.areaRepo.ListDivisionalSecretariats(ctx, districtID)
}

func (s *service) ListGNDivisions(ctx context.Context, divisionalSecretariatID int64) ([]domain.GNDivision, error) {
	return s.areaRepo.ListGNDivisions(ctx, divisionalSecretariatID)
}

func (s *service) Name(ctx context.Context, areaType domain.AreaType, id int64) (string, error) {
	if !areaType.IsValid() {
		return "", domain.NewValidationError("type", "must be district, divisional_secretariat or grama_niladhari_division")
	}

	cacheKey := fmt.Sprintf("area:name:%s:%d", areaType, id)
	if cached, ok := s.local.Load(cacheKey); ok {
		return cached.(string), nil
	}
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			s.local.Store(cacheKey, cached)
			return cached, nil
		}
	}

	name, err := s.areaRepo.Name(ctx, areaType, id)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", domain.ErrNotFound
	}

	s.local.Store(cacheKey, name)
	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, name, 0).Err(); err != nil {
			log.Printf("area: cache %s: %v", cacheKey, err)
		}
	}
	return name, nil
}
