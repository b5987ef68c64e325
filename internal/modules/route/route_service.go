package route

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/utils"
)

// ServiceInterface defines the contract for the trip master service.
type ServiceInterface interface {
	CreateRoute(ctx context.Context, req models.RouteRequest) (*models.Route, error)
	GetRoute(ctx context.Context, routeID int) (*models.Route, error)
	ListRoutes(ctx context.Context, filter models.ListFilter) ([]*models.Route, int, error)
	UpdateRoute(ctx context.Context, routeID int, req models.RouteRequest) (*models.Route, error)
	DeleteRoute(ctx context.Context, routeID int) error
}

type Service struct {
	repo  RepositoryInterface
	cache cache.Store
}

func NewService(repo RepositoryInterface, store cache.Store) *Service {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Service{repo: repo, cache: store}
}

func normalize(req models.RouteRequest) models.RouteRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.FixedDistance = allowance.Round2(req.FixedDistance)
	req.FixedAllowance = allowance.Round2(req.FixedAllowance)
	req.FixedFoodAllowance = allowance.Round2(req.FixedFoodAllowance)
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	return req
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboard); err != nil {
		log.Printf("route: failed to invalidate dashboard cache: %v", err)
	}
}

func (s *Service) CreateRoute(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	rt, err := s.repo.Create(ctx, normalize(req))
	if err != nil {
		return nil, fmt.Errorf("service.CreateRoute: %w", err)
	}
	s.invalidate(ctx)
	return rt, nil
}

func (s *Service) GetRoute(ctx context.Context, routeID int) (*models.Route, error) {
	rt, err := s.repo.FindByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("service.GetRoute: %w", err)
	}
	return rt, nil
}

func (s *Service) ListRoutes(ctx context.Context, filter models.ListFilter) ([]*models.Route, int, error) {
	routes, total, err := s.repo.List(ctx, utils.ClampFilter(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListRoutes: %w", err)
	}
	return routes, total, nil
}

func (s *Service) UpdateRoute(ctx context.Context, routeID int, req models.RouteRequest) (*models.Route, error) {
	rt, err := s.repo.Update(ctx, routeID, normalize(req))
	if err != nil {
		return nil, fmt.Errorf("service.UpdateRoute: %w", err)
	}
	s.invalidate(ctx)
	return rt, nil
}

func (s *Service) DeleteRoute(ctx context.Context, routeID int) error {
	if err := s.repo.Delete(ctx, routeID); err != nil {
		return fmt.Errorf("service.DeleteRoute: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
