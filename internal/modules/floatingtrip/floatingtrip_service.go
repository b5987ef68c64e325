package floatingtrip

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/utils"
)

// ServiceInterface defines the contract for the floating trip service.
type ServiceInterface interface {
	Preview(in allowance.Input) allowance.Result
	NextDocumentNo(ctx context.Context) (string, error)
	CreateFloatingTrip(ctx context.Context, req models.FloatingTripRequest) (*models.FloatingTrip, error)
	GetFloatingTrip(ctx context.Context, tripID int) (*models.FloatingTrip, error)
	ListFloatingTrips(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FloatingTrip, int, error)
	ExportFloatingTrips(ctx context.Context, search string, dates models.TripDateRange) ([]*models.FloatingTrip, error)
	UpdateFloatingTrip(ctx context.Context, tripID int, req models.FloatingTripRequest) (*models.FloatingTrip, error)
	DeleteFloatingTrip(ctx context.Context, tripID int) error
}

type Service struct {
	repo    RepositoryInterface
	calc    *allowance.Calculator
	checker *fleet.Checker
	cache   cache.Store
}

func NewService(repo RepositoryInterface, calc *allowance.Calculator, checker *fleet.Checker, store cache.Store) *Service {
	if calc == nil {
		calc = allowance.NewCalculator(allowance.DefaultPolicy())
	}
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Service{repo: repo, calc: calc, checker: checker, cache: store}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboard); err != nil {
		log.Printf("floatingtrip: failed to invalidate dashboard cache: %v", err)
	}
}

// Preview runs the calculator on unsaved form values.
func (s *Service) Preview(in allowance.Input) allowance.Result {
	return s.calc.Calculate(in)
}

// build derives every computed column from the raw form. Client supplied
// totals never reach storage.
func (s *Service) build(ctx context.Context, req models.FloatingTripRequest, isNew bool) (*models.FloatingTrip, error) {
	if _, _, err := s.checker.Assignment(ctx, req.DriverID, req.VehicleID, isNew); err != nil {
		return nil, err
	}

	// stored readings are 2dp, so the distance is derived from the same values
	startKm := allowance.Round2(allowance.ParseAmount(req.StartKm))
	endKm := allowance.Round2(allowance.ParseAmount(req.EndKm))
	res := s.calc.Calculate(allowance.Input{
		StartKm:       allowance.FormatAmount(startKm),
		EndKm:         allowance.FormatAmount(endKm),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		FoodAllowance: req.FoodAllowance,
	})
	return &models.FloatingTrip{
		TripDate:         req.TripDate,
		DriverID:         req.DriverID,
		VehicleID:        req.VehicleID,
		AreaName:         strings.TrimSpace(req.AreaName),
		StartTime:        strings.TrimSpace(req.StartTime),
		EndTime:          strings.TrimSpace(req.EndTime),
		StartKm:          startKm,
		EndKm:            endKm,
		FoodAllowance:    res.FoodAllowance,
		TotalDistance:    res.TotalDistance,
		MileageAllowance: res.MileageAllowance,
		TotalTime:        res.TotalTime,
		TimeBonus:        res.TimeBonusAmount,
	}, nil
}

func (s *Service) NextDocumentNo(ctx context.Context) (string, error) {
	no, err := s.repo.NextDocumentNo(ctx)
	if err != nil {
		return "", fmt.Errorf("service.NextDocumentNo: %w", err)
	}
	return no, nil
}

func (s *Service) CreateFloatingTrip(ctx context.Context, req models.FloatingTripRequest) (*models.FloatingTrip, error) {
	trip, err := s.build(ctx, req, true)
	if err != nil {
		return nil, fmt.Errorf("service.CreateFloatingTrip: %w", err)
	}
	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("service.CreateFloatingTrip: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) GetFloatingTrip(ctx context.Context, tripID int) (*models.FloatingTrip, error) {
	t, err := s.repo.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.GetFloatingTrip: %w", err)
	}
	return t, nil
}

func (s *Service) ListFloatingTrips(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FloatingTrip, int, error) {
	trips, total, err := s.repo.List(ctx, utils.ClampFilter(filter), dates)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListFloatingTrips: %w", err)
	}
	return trips, total, nil
}

func (s *Service) ExportFloatingTrips(ctx context.Context, search string, dates models.TripDateRange) ([]*models.FloatingTrip, error) {
	trips, err := s.repo.ListAll(ctx, strings.TrimSpace(search), dates)
	if err != nil {
		return nil, fmt.Errorf("service.ExportFloatingTrips: %w", err)
	}
	return trips, nil
}

func (s *Service) UpdateFloatingTrip(ctx context.Context, tripID int, req models.FloatingTripRequest) (*models.FloatingTrip, error) {
	if _, err := s.repo.FindByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.UpdateFloatingTrip: %w", err)
	}
	trip, err := s.build(ctx, req, false)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateFloatingTrip: %w", err)
	}
	trip.ID = tripID
	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateFloatingTrip: %w", err)
	}
	return updated, nil
}

func (s *Service) DeleteFloatingTrip(ctx context.Context, tripID int) error {
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.DeleteFloatingTrip: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
