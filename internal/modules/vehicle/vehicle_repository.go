package vehicle

import (
	"context"
	"fmt"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for vehicle and vehicle type storage.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.VehicleRequest) (*models.Vehicle, error)
	FindByID(ctx context.Context, vehicleID int) (*models.Vehicle, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Vehicle, int, error)
	Update(ctx context.Context, vehicleID int, req models.VehicleRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, vehicleID int) error

	ListTypes(ctx context.Context) ([]string, error)
	TypeExists(ctx context.Context, name string) (bool, error)
	CreateType(ctx context.Context, name string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const vehicleColumns = `id, name, vehicle_no, vehicle_type, status, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := row.Scan(&v.ID, &v.Name, &v.VehicleNo, &v.VehicleType, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) Create(ctx context.Context, req models.VehicleRequest) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (name, vehicle_no, vehicle_type, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + vehicleColumns
	v, err := scanVehicle(r.db.QueryRow(ctx, query, req.Name, req.VehicleNo, req.VehicleType, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return v, nil
}

func (r *Repository) FindByID(ctx context.Context, vehicleID int) (*models.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, vehicleID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return v, nil
}

func (r *Repository) List(ctx context.Context, filter models.ListFilter) ([]*models.Vehicle, int, error) {
	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR vehicle_no ILIKE '%' || $1 || '%' OR vehicle_type ILIKE '%' || $1 || '%')
		AND ($2 = '' OR status = $2)`
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ` + where + ` ORDER BY name, id LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Search, filter.Status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	vehicles := []*models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles `+where, filter.Search, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return vehicles, total, nil
}

func (r *Repository) Update(ctx context.Context, vehicleID int, req models.VehicleRequest) (*models.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET name = $2, vehicle_no = $3, vehicle_type = $4, status = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + vehicleColumns
	v, err := scanVehicle(r.db.QueryRow(ctx, query, vehicleID, req.Name, req.VehicleNo, req.VehicleType, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	return v, nil
}

func (r *Repository) Delete(ctx context.Context, vehicleID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) ListTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM vehicle_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListTypes.Query: %w", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repository.ListTypes.Collect: %w", err)
	}
	return types, nil
}

func (r *Repository) TypeExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vehicle_types WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository.TypeExists: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreateType(ctx context.Context, name string) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO vehicle_types (name) VALUES ($1)`, name); err != nil {
		return utils.WrapDBError("repository.CreateType", err)
	}
	return nil
}
