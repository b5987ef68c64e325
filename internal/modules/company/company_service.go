package company

import (
	"context"
	"fmt"
	"strings"

	"fleet-management/internal/models"
)

type ServiceInterface interface {
	GetSettings(ctx context.Context) (*models.CompanySettings, error)
	SaveSettings(ctx context.Context, req models.CompanySettingsRequest) (*models.CompanySettings, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GetSettings: %w", err)
	}
	return settings, nil
}

func (s *Service) SaveSettings(ctx context.Context, req models.CompanySettingsRequest) (*models.CompanySettings, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Address = strings.TrimSpace(req.Address)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.CompanyName == "" {
		return nil, fmt.Errorf("service.SaveSettings: %w: company_name is blank", models.ErrInvalidInput)
	}

	settings, err := s.repo.Upsert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.SaveSettings: %w", err)
	}
	return settings, nil
}
