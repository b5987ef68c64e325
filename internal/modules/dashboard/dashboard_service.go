package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleet-management/internal/models"
	"fleet-management/pkg/cache"
)

type ServiceInterface interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type Service struct {
	repo  RepositoryInterface
	cache cache.Store
	ttl   time.Duration
}

// NewService caches the counters for ttl. A zero ttl disables caching.
func NewService(repo RepositoryInterface, store cache.Store, ttl time.Duration) *Service {
	if store == nil || ttl <= 0 {
		store = cache.NoopStore{}
	}
	return &Service{repo: repo, cache: store, ttl: ttl}
}

// GetStats serves from cache when possible. Cache faults fall through to
// the database.
func (s *Service) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	hit, err := s.cache.GetJSON(ctx, cache.KeyDashboard, &cached)
	if err != nil {
		log.Printf("dashboard: cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GetStats: %w", err)
	}
	stats.GeneratedAt = time.Now().UTC()

	if err := s.cache.SetJSON(ctx, cache.KeyDashboard, stats, s.ttl); err != nil {
		log.Printf("dashboard: cache write failed: %v", err)
	}
	return stats, nil
}
