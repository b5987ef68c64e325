package company

import (
	"context"
	"errors"
	"fmt"

	"fleet-management/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryInterface interface {
	Get(ctx context.Context) (*models.CompanySettings, error)
	Upsert(ctx context.Context, req models.CompanySettingsRequest) (*models.CompanySettings, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Get returns the saved settings, or a zero value when none exist yet.
func (r *Repository) Get(ctx context.Context) (*models.CompanySettings, error) {
	var s models.CompanySettings
	err := r.db.QueryRow(ctx, `SELECT company_name, address, phone, updated_at FROM company_settings WHERE id = 1`).
		Scan(&s.CompanyName, &s.Address, &s.Phone, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.CompanySettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository.Get: %w", err)
	}
	return &s, nil
}

func (r *Repository) Upsert(ctx context.Context, req models.CompanySettingsRequest) (*models.CompanySettings, error) {
	query := `
		INSERT INTO company_settings (id, company_name, address, phone, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET company_name = EXCLUDED.company_name, address = EXCLUDED.address,
		    phone = EXCLUDED.phone, updated_at = NOW()
		RETURNING company_name, address, phone, updated_at`
	var s models.CompanySettings
	if err := r.db.QueryRow(ctx, query, req.CompanyName, req.Address, req.Phone).
		Scan(&s.CompanyName, &s.Address, &s.Phone, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("repository.Upsert: %w", err)
	}
	return &s, nil
}
