package report

import (
	"context"
	"fmt"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/email"
)

// ServiceInterface defines the contract for the report service.
type ServiceInterface interface {
	DriverLedger(ctx context.Context, req models.LedgerRequest) (*models.DriverLedger, error)
	EmailDriverLedger(ctx context.Context, req models.EmailLedgerRequest) error
}

// CompanyReader supplies the letterhead for statements.
type CompanyReader interface {
	GetSettings(ctx context.Context) (*models.CompanySettings, error)
}

type Service struct {
	repo      RepositoryInterface
	checker   *fleet.Checker
	company   CompanyReader
	sender    email.ServiceInterface
	templates *email.TemplateManager
}

// NewService wires the ledger. A nil sender disables emailed statements.
func NewService(repo RepositoryInterface, checker *fleet.Checker, company CompanyReader, sender email.ServiceInterface, templates *email.TemplateManager) *Service {
	return &Service{repo: repo, checker: checker, company: company, sender: sender, templates: templates}
}

func (s *Service) DriverLedger(ctx context.Context, req models.LedgerRequest) (*models.DriverLedger, error) {
	if req.FromDate > req.ToDate {
		return nil, fmt.Errorf("service.DriverLedger: %w: from_date is after to_date", models.ErrInvalidInput)
	}
	driver, err := s.checker.Driver(ctx, req.DriverID, false)
	if err != nil {
		return nil, fmt.Errorf("service.DriverLedger: %w", err)
	}

	opening, err := s.repo.OpeningBalance(ctx, req.DriverID, req.FromDate)
	if err != nil {
		return nil, fmt.Errorf("service.DriverLedger: %w", err)
	}
	entries, err := s.repo.Entries(ctx, req.DriverID, req.FromDate, req.ToDate)
	if err != nil {
		return nil, fmt.Errorf("service.DriverLedger: %w", err)
	}

	summary := models.LedgerSummary{OpeningBalance: allowance.Round2(opening)}
	running := summary.OpeningBalance
	for _, e := range entries {
		summary.TotalCredit += e.CrAmount
		summary.TotalDebit += e.DrAmount
		running = allowance.Round2(running + e.CrAmount - e.DrAmount)
		e.RunningBalance = running
	}
	summary.TotalCredit = allowance.Round2(summary.TotalCredit)
	summary.TotalDebit = allowance.Round2(summary.TotalDebit)
	summary.Balance = allowance.Round2(summary.OpeningBalance + summary.TotalCredit - summary.TotalDebit)

	return &models.DriverLedger{
		Driver:       driver,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		Summary:      summary,
		Transactions: entries,
	}, nil
}

// EmailDriverLedger renders the ledger as a statement and mails it.
func (s *Service) EmailDriverLedger(ctx context.Context, req models.EmailLedgerRequest) error {
	if s.sender == nil || s.templates == nil {
		return models.ErrEmailDisabled
	}
	ledger, err := s.DriverLedger(ctx, req.LedgerRequest)
	if err != nil {
		return err
	}

	data := email.StatementData{Ledger: ledger}
	if s.company != nil {
		if settings, err := s.company.GetSettings(ctx); err == nil {
			data.CompanyName = settings.CompanyName
		}
	}
	text, html, err := s.templates.GenerateStatement(data)
	if err != nil {
		return fmt.Errorf("service.EmailDriverLedger.Render: %w", err)
	}
	if err := s.sender.SendEmail(ctx, req.To, data.Subject(), text, html); err != nil {
		return fmt.Errorf("service.EmailDriverLedger.Send: %w", err)
	}
	return nil
}
