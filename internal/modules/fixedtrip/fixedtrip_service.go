package fixedtrip

import (
	"context"
	"fmt"
	"log"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/utils"
)

// ServiceInterface defines the contract for the fixed trip service.
type ServiceInterface interface {
	NextDocumentNo(ctx context.Context) (string, error)
	CreateFixedTrip(ctx context.Context, req models.FixedTripRequest) (*models.FixedTrip, error)
	GetFixedTrip(ctx context.Context, tripID int) (*models.FixedTrip, error)
	ListFixedTrips(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FixedTrip, int, error)
	UpdateFixedTrip(ctx context.Context, tripID int, req models.FixedTripRequest) (*models.FixedTrip, error)
	DeleteFixedTrip(ctx context.Context, tripID int) error
}

type Service struct {
	repo    RepositoryInterface
	checker *fleet.Checker
	cache   cache.Store
}

func NewService(repo RepositoryInterface, checker *fleet.Checker, store cache.Store) *Service {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Service{repo: repo, checker: checker, cache: store}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboard); err != nil {
		log.Printf("fixedtrip: failed to invalidate dashboard cache: %v", err)
	}
}

func pick(override *float64, fallback float64) float64 {
	if override != nil {
		return allowance.Round2(*override)
	}
	return fallback
}

// build resolves the masters and fills route defaults. Creates require
// active masters, edits of older trips do not.
func (s *Service) build(ctx context.Context, req models.FixedTripRequest, isNew bool) (*models.FixedTrip, error) {
	if _, _, err := s.checker.Assignment(ctx, req.DriverID, req.VehicleID, isNew); err != nil {
		return nil, err
	}
	rt, err := s.checker.Route(ctx, req.RouteID, isNew)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	return &models.FixedTrip{
		TripDate:       req.TripDate,
		DriverID:       req.DriverID,
		VehicleID:      req.VehicleID,
		RouteID:        rt.ID,
		RouteName:      rt.Name,
		Distance:       pick(req.Distance, rt.FixedDistance),
		FixedAllowance: pick(req.FixedAllowance, rt.FixedAllowance),
		FoodAllowance:  pick(req.FoodAllowance, rt.FixedFoodAllowance),
		Status:         status,
	}, nil
}

func (s *Service) NextDocumentNo(ctx context.Context) (string, error) {
	no, err := s.repo.NextDocumentNo(ctx)
	if err != nil {
		return "", fmt.Errorf("service.NextDocumentNo: %w", err)
	}
	return no, nil
}

func (s *Service) CreateFixedTrip(ctx context.Context, req models.FixedTripRequest) (*models.FixedTrip, error) {
	trip, err := s.build(ctx, req, true)
	if err != nil {
		return nil, fmt.Errorf("service.CreateFixedTrip: %w", err)
	}
	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("service.CreateFixedTrip: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) GetFixedTrip(ctx context.Context, tripID int) (*models.FixedTrip, error) {
	t, err := s.repo.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.GetFixedTrip: %w", err)
	}
	return t, nil
}

func (s *Service) ListFixedTrips(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FixedTrip, int, error) {
	trips, total, err := s.repo.List(ctx, utils.ClampFilter(filter), dates)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListFixedTrips: %w", err)
	}
	return trips, total, nil
}

func (s *Service) UpdateFixedTrip(ctx context.Context, tripID int, req models.FixedTripRequest) (*models.FixedTrip, error) {
	if _, err := s.repo.FindByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.UpdateFixedTrip: %w", err)
	}
	trip, err := s.build(ctx, req, false)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateFixedTrip: %w", err)
	}
	trip.ID = tripID
	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateFixedTrip: %w", err)
	}
	return updated, nil
}

func (s *Service) DeleteFixedTrip(ctx context.Context, tripID int) error {
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.DeleteFixedTrip: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
