package driver

import (
	"context"
	"fmt"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for driver storage.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.DriverRequest) (*models.Driver, error)
	FindByID(ctx context.Context, driverID int) (*models.Driver, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, int, error)
	Update(ctx context.Context, driverID int, req models.DriverRequest) (*models.Driver, error)
	Delete(ctx context.Context, driverID int) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const driverColumns = `id, driver_name, phone, license_no,
	COALESCE(to_char(joining_date, 'YYYY-MM-DD'), ''), status, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNo, &d.JoiningDate, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new driver.
func (r *Repository) Create(ctx context.Context, req models.DriverRequest) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (driver_name, phone, license_no, joining_date, status)
		VALUES ($1, $2, $3, NULLIF($4, '')::date, $5)
		RETURNING ` + driverColumns
	d, err := scanDriver(r.db.QueryRow(ctx, query, req.Name, req.Phone, req.LicenseNo, req.JoiningDate, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return d, nil
}

// FindByID retrieves a single driver by its ID.
func (r *Repository) FindByID(ctx context.Context, driverID int) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, driverID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return d, nil
}

// List searches name, phone and licence number.
func (r *Repository) List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, int, error) {
	where := `WHERE ($1 = '' OR driver_name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%' OR license_no ILIKE '%' || $1 || '%')
		AND ($2 = '' OR status = $2)`
	query := `SELECT ` + driverColumns + ` FROM drivers ` + where + ` ORDER BY driver_name, id LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Search, filter.Status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers `+where, filter.Search, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return drivers, total, nil
}

func (r *Repository) Update(ctx context.Context, driverID int, req models.DriverRequest) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET driver_name = $2, phone = $3, license_no = $4, joining_date = NULLIF($5, '')::date,
		    status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns
	d, err := scanDriver(r.db.QueryRow(ctx, query, driverID, req.Name, req.Phone, req.LicenseNo, req.JoiningDate, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	return d, nil
}

// Delete removes a driver. Drivers with trips or payments return models.ErrReferenced.
func (r *Repository) Delete(ctx context.Context, driverID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, driverID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
