package payment

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

// ServiceInterface defines the contract for the payment service.
type ServiceInterface interface {
	NextDocumentNo(ctx context.Context) (string, error)
	GetBalance(ctx context.Context, driverID, excludePaymentID int) (*models.DriverBalance, error)
	CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, paymentID int) (*models.Payment, error)
	ListPayments(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.Payment, int, error)
	UpdatePayment(ctx context.Context, paymentID int, req models.PaymentRequest) (*models.Payment, error)
	DeletePayment(ctx context.Context, paymentID int) error
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
		log.Printf("payment: failed to invalidate dashboard cache: %v", err)
	}
}

func toPayment(req models.PaymentRequest) *models.Payment {
	return &models.Payment{
		PaymentDate: req.PaymentDate,
		DriverID:    req.DriverID,
		Amount:      allowance.Round2(req.Amount),
		PaymentMode: strings.ToUpper(req.PaymentMode),
		Remarks:     strings.TrimSpace(req.Remarks),
	}
}

func (s *Service) NextDocumentNo(ctx context.Context) (string, error) {
	no, err := s.repo.NextDocumentNo(ctx)
	if err != nil {
		return "", fmt.Errorf("service.NextDocumentNo: %w", err)
	}
	return no, nil
}

// GetBalance reports what the company owes a driver. Passing the payment
// being edited as excludePaymentID adds its amount back.
func (s *Service) GetBalance(ctx context.Context, driverID, excludePaymentID int) (*models.DriverBalance, error) {
	if _, err := s.checker.Driver(ctx, driverID, false); err != nil {
		return nil, fmt.Errorf("service.GetBalance: %w", err)
	}
	b, err := s.repo.Balance(ctx, driverID, excludePaymentID)
	if err != nil {
		return nil, fmt.Errorf("service.GetBalance: %w", err)
	}
	return b, nil
}

func (s *Service) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	if _, err := s.checker.Driver(ctx, req.DriverID, true); err != nil {
		return nil, fmt.Errorf("service.CreatePayment: %w", err)
	}
	p, err := s.repo.Create(ctx, toPayment(req))
	if err != nil {
		return nil, fmt.Errorf("service.CreatePayment: %w", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, paymentID int) (*models.Payment, error) {
	p, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("service.GetPayment: %w", err)
	}
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.Payment, int, error) {
	payments, total, err := s.repo.List(ctx, utils.ClampFilter(filter), dates)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListPayments: %w", err)
	}
	return payments, total, nil
}

func (s *Service) UpdatePayment(ctx context.Context, paymentID int, req models.PaymentRequest) (*models.Payment, error) {
	if _, err := s.repo.FindByID(ctx, paymentID); err != nil {
		return nil, fmt.Errorf("service.UpdatePayment: %w", err)
	}
	if _, err := s.checker.Driver(ctx, req.DriverID, false); err != nil {
		return nil, fmt.Errorf("service.UpdatePayment: %w", err)
	}
	p := toPayment(req)
	p.ID = paymentID
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.UpdatePayment: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeletePayment(ctx context.Context, paymentID int) error {
	if err := s.repo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("service.DeletePayment: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
