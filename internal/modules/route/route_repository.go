package route

import (
	"context"
	"fmt"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for trip master storage.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.RouteRequest) (*models.Route, error)
	FindByID(ctx context.Context, routeID int) (*models.Route, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Route, int, error)
	Update(ctx context.Context, routeID int, req models.RouteRequest) (*models.Route, error)
	Delete(ctx context.Context, routeID int) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const routeColumns = `id, route_name, fixed_distance, fixed_allowance, fixed_food_allowance, status, created_at, updated_at`

func scanRoute(row pgx.Row) (*models.Route, error) {
	var rt models.Route
	err := row.Scan(&rt.ID, &rt.Name, &rt.FixedDistance, &rt.FixedAllowance, &rt.FixedFoodAllowance, &rt.Status, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *Repository) Create(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	query := `
		INSERT INTO routes (route_name, fixed_distance, fixed_allowance, fixed_food_allowance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + routeColumns
	rt, err := scanRoute(r.db.QueryRow(ctx, query, req.Name, req.FixedDistance, req.FixedAllowance, req.FixedFoodAllowance, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return rt, nil
}

func (r *Repository) FindByID(ctx context.Context, routeID int) (*models.Route, error) {
	rt, err := scanRoute(r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, routeID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return rt, nil
}

func (r *Repository) List(ctx context.Context, filter models.ListFilter) ([]*models.Route, int, error) {
	where := `WHERE ($1 = '' OR route_name ILIKE '%' || $1 || '%') AND ($2 = '' OR status = $2)`
	query := `SELECT ` + routeColumns + ` FROM routes ` + where + ` ORDER BY route_name LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Search, filter.Status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	routes := []*models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM routes `+where, filter.Search, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return routes, total, nil
}

func (r *Repository) Update(ctx context.Context, routeID int, req models.RouteRequest) (*models.Route, error) {
	query := `
		UPDATE routes
		SET route_name = $2, fixed_distance = $3, fixed_allowance = $4, fixed_food_allowance = $5,
		    status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + routeColumns
	rt, err := scanRoute(r.db.QueryRow(ctx, query, routeID, req.Name, req.FixedDistance, req.FixedAllowance, req.FixedFoodAllowance, req.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	return rt, nil
}

func (r *Repository) Delete(ctx context.Context, routeID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, routeID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
