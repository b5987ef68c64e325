package dashboard

import (
	"context"
	"fmt"

	"fleet-management/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryInterface interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM vehicles),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM routes),
			(SELECT COUNT(*) FROM fixed_trips),
			(SELECT COUNT(*) FROM floating_trips),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments
			 WHERE payment_date >= date_trunc('month', CURRENT_DATE))`
	var s models.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(&s.Vehicles, &s.Drivers, &s.Routes,
		&s.FixedTrips, &s.FloatingTrips, &s.Payments, &s.PaymentsThisMonth)
	if err != nil {
		return nil, fmt.Errorf("repository.Stats: %w", err)
	}
	return &s, nil
}
