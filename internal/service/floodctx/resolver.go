package floodctx

import (
	"context"
	"fmt"
	"time"

	"flowx-relief/internal/domain"
)

// Resolver picks the flood that request lists and new submissions belong to.
type Resolver interface {
	ResolveCurrentOrLatest(ctx context.Context) (*domain.Flood, error)
}

// FloodFinder is the part of the flood repository the resolver reads.
type FloodFinder interface {
	FindActiveOn(ctx context.Context, day time.Time) (*domain.Flood, error)
	FindLatest(ctx context.Context) (*domain.Flood, error)
}

type resolver struct {
	floodRepo FloodFinder
	now       func() time.Time
	loc       *time.Location
}

type Option func(*resolver)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *resolver) { r.now = now }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(r *resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func NewResolver(floodRepo FloodFinder, opts ...Option) Resolver {
	r := &resolver{
		floodRepo: floodRepo,
		now:       time.Now,
		loc:       time.UTC,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *resolver) ResolveCurrentOrLatest(ctx context.Context) (*domain.Flood, error) {
	now := r.now().In(r.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	flood, err := r.floodRepo.FindActiveOn(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("find active flood: %w", err)
	}
	if flood != nil {
		return flood, nil
	}

	flood, err = r.floodRepo.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("find latest flood: %w", err)
	}
	if flood == nil {
		return nil, domain.ErrNoFlood
	}
	return flood, nil
}
