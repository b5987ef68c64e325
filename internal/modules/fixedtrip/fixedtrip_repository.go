package fixedtrip

import (
	"context"
	"fmt"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for fixed trip storage.
type RepositoryInterface interface {
	NextDocumentNo(ctx context.Context) (string, error)
	Create(ctx context.Context, trip *models.FixedTrip) (*models.FixedTrip, error)
	FindByID(ctx context.Context, tripID int) (*models.FixedTrip, error)
	List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FixedTrip, int, error)
	Update(ctx context.Context, trip *models.FixedTrip) (*models.FixedTrip, error)
	Delete(ctx context.Context, tripID int) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const tripSelect = `
	SELECT t.id, t.document_no, to_char(t.trip_date, 'YYYY-MM-DD'), t.driver_id, d.driver_name,
	       t.vehicle_id, v.name, t.route_id, t.route_name, t.distance, t.fixed_allowance,
	       t.food_allowance, t.status, t.created_at, t.updated_at
	FROM fixed_trips t
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id`

func scanTrip(row pgx.Row) (*models.FixedTrip, error) {
	var t models.FixedTrip
	err := row.Scan(&t.ID, &t.DocumentNo, &t.TripDate, &t.DriverID, &t.DriverName,
		&t.VehicleID, &t.VehicleName, &t.RouteID, &t.RouteName, &t.Distance, &t.FixedAllowance,
		&t.FoodAllowance, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.TotalAmount = allowance.Round2(t.FixedAllowance + t.FoodAllowance)
	return &t, nil
}

// NextDocumentNo peeks at the sequence without consuming a value.
func (r *Repository) NextDocumentNo(ctx context.Context) (string, error) {
	var next int64
	query := `SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM fixed_trip_doc_seq`
	if err := r.db.QueryRow(ctx, query).Scan(&next); err != nil {
		return "", fmt.Errorf("repository.NextDocumentNo: %w", err)
	}
	return utils.FormatDocumentNo(utils.PrefixFixedTrip, next), nil
}

// Create assigns the next document number and inserts the trip.
func (r *Repository) Create(ctx context.Context, trip *models.FixedTrip) (*models.FixedTrip, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('fixed_trip_doc_seq')`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("repository.Create.NextVal: %w", err)
	}

	query := `
		INSERT INTO fixed_trips (document_no, trip_date, driver_id, vehicle_id, route_id, route_name,
		                         distance, fixed_allowance, food_allowance, status)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, utils.FormatDocumentNo(utils.PrefixFixedTrip, seq), trip.TripDate,
		trip.DriverID, trip.VehicleID, trip.RouteID, trip.RouteName, trip.Distance, trip.FixedAllowance,
		trip.FoodAllowance, trip.Status).Scan(&id)
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) FindByID(ctx context.Context, tripID int) (*models.FixedTrip, error) {
	t, err := scanTrip(r.db.QueryRow(ctx, tripSelect+` WHERE t.id = $1`, tripID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return t, nil
}

// List searches document number, route, driver and vehicle names.
func (r *Repository) List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FixedTrip, int, error) {
	where := `
	WHERE ($1 = '' OR t.document_no ILIKE '%' || $1 || '%' OR t.route_name ILIKE '%' || $1 || '%'
	       OR d.driver_name ILIKE '%' || $1 || '%' OR v.name ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR t.status = $2)
	  AND ($3 = '' OR t.trip_date >= NULLIF($3, '')::date)
	  AND ($4 = '' OR t.trip_date <= NULLIF($4, '')::date)`
	args := []interface{}{filter.Search, filter.Status, dates.From, dates.To}

	query := tripSelect + where + ` ORDER BY t.trip_date DESC, t.id DESC LIMIT $5 OFFSET $6`
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	trips := []*models.FixedTrip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM fixed_trips t
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return trips, total, nil
}

// Update rewrites every editable column. The document number never changes.
func (r *Repository) Update(ctx context.Context, trip *models.FixedTrip) (*models.FixedTrip, error) {
	query := `
		UPDATE fixed_trips
		SET trip_date = $2::date, driver_id = $3, vehicle_id = $4, route_id = $5, route_name = $6,
		    distance = $7, fixed_allowance = $8, food_allowance = $9, status = $10, updated_at = NOW()
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, trip.ID, trip.TripDate, trip.DriverID, trip.VehicleID, trip.RouteID,
		trip.RouteName, trip.Distance, trip.FixedAllowance, trip.FoodAllowance, trip.Status)
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, trip.ID)
}

func (r *Repository) Delete(ctx context.Context, tripID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM fixed_trips WHERE id = $1`, tripID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
