package vehicle

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fleet-management/internal/models"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/utils"
)

// ServiceInterface defines the contract for the vehicle service.
type ServiceInterface interface {
	CreateVehicle(ctx context.Context, req models.VehicleRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID int) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, filter models.ListFilter) ([]*models.Vehicle, int, error)
	UpdateVehicle(ctx context.Context, vehicleID int, req models.VehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleID int) error

	ListVehicleTypes(ctx context.Context) ([]string, error)
	AddVehicleType(ctx context.Context, name string) (string, error)
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

func normalizeType(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// prepare normalises the request and checks the vehicle type against the master list.
func (s *Service) prepare(ctx context.Context, req models.VehicleRequest) (models.VehicleRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.VehicleNo = strings.ToUpper(strings.TrimSpace(req.VehicleNo))
	req.VehicleType = normalizeType(req.VehicleType)
	if req.Status == "" {
		req.Status = models.StatusActive
	}

	ok, err := s.repo.TypeExists(ctx, req.VehicleType)
	if err != nil {
		return req, err
	}
	if !ok {
		return req, fmt.Errorf("%w: unknown vehicle type %q", models.ErrInvalidInput, req.VehicleType)
	}
	return req, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboard); err != nil {
		log.Printf("vehicle: failed to invalidate dashboard cache: %v", err)
	}
}

func (s *Service) CreateVehicle(ctx context.Context, req models.VehicleRequest) (*models.Vehicle, error) {
	req, err := s.prepare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.CreateVehicle: %w", err)
	}
	v, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.CreateVehicle: %w", err)
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, vehicleID int) (*models.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("service.GetVehicle: %w", err)
	}
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context, filter models.ListFilter) ([]*models.Vehicle, int, error) {
	vehicles, total, err := s.repo.List(ctx, utils.ClampFilter(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListVehicles: %w", err)
	}
	return vehicles, total, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, vehicleID int, req models.VehicleRequest) (*models.Vehicle, error) {
	req, err := s.prepare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateVehicle: %w", err)
	}
	v, err := s.repo.Update(ctx, vehicleID, req)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateVehicle: %w", err)
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, vehicleID int) error {
	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("service.DeleteVehicle: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListVehicleTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListVehicleTypes: %w", err)
	}
	return types, nil
}

// AddVehicleType registers a custom type. Names are stored upper-case.
func (s *Service) AddVehicleType(ctx context.Context, name string) (string, error) {
	name = normalizeType(name)
	if name == "" {
		return "", fmt.Errorf("%w: vehicle type name is required", models.ErrInvalidInput)
	}
	if err := s.repo.CreateType(ctx, name); err != nil {
		return "", fmt.Errorf("service.AddVehicleType: %w", err)
	}
	return name, nil
}
