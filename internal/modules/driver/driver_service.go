package driver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fleet-management/internal/models"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/utils"
)

// ServiceInterface defines the contract for the driver service.
type ServiceInterface interface {
	CreateDriver(ctx context.Context, req models.DriverRequest) (*models.Driver, error)
	GetDriver(ctx context.Context, driverID int) (*models.Driver, error)
	ListDrivers(ctx context.Context, filter models.ListFilter) ([]*models.Driver, int, error)
	UpdateDriver(ctx context.Context, driverID int, req models.DriverRequest) (*models.Driver, error)
	DeleteDriver(ctx context.Context, driverID int) error
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

func normalize(req models.DriverRequest) models.DriverRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.LicenseNo = strings.TrimSpace(req.LicenseNo)
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	return req
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboard); err != nil {
		log.Printf("driver: failed to invalidate dashboard cache: %v", err)
	}
}

func (s *Service) CreateDriver(ctx context.Context, req models.DriverRequest) (*models.Driver, error) {
	d, err := s.repo.Create(ctx, normalize(req))
	if err != nil {
		return nil, fmt.Errorf("service.CreateDriver: %w", err)
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *Service) GetDriver(ctx context.Context, driverID int) (*models.Driver, error) {
	d, err := s.repo.FindByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.GetDriver: %w", err)
	}
	return d, nil
}

func (s *Service) ListDrivers(ctx context.Context, filter models.ListFilter) ([]*models.Driver, int, error) {
	drivers, total, err := s.repo.List(ctx, utils.ClampFilter(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListDrivers: %w", err)
	}
	return drivers, total, nil
}

func (s *Service) UpdateDriver(ctx context.Context, driverID int, req models.DriverRequest) (*models.Driver, error) {
	d, err := s.repo.Update(ctx, driverID, normalize(req))
	if err != nil {
		return nil, fmt.Errorf("service.UpdateDriver: %w", err)
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *Service) DeleteDriver(ctx context.Context, driverID int) error {
	if err := s.repo.Delete(ctx, driverID); err != nil {
		return fmt.Errorf("service.DeleteDriver: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
