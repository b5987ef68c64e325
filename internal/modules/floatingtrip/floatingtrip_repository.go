package floatingtrip

import (
	"context"
	"fmt"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for floating trip storage.
type RepositoryInterface interface {
	NextDocumentNo(ctx context.Context) (string, error)
	Create(ctx context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error)
	FindByID(ctx context.Context, tripID int) (*models.FloatingTrip, error)
	List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FloatingTrip, int, error)
	ListAll(ctx context.Context, search string, dates models.TripDateRange) ([]*models.FloatingTrip, error)
	Update(ctx context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error)
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
	       t.vehicle_id, v.name, t.area_name, t.start_time, t.end_time, t.start_km, t.end_km,
	       t.food_allowance, t.total_distance, t.mileage_allowance, t.total_time, t.time_bonus,
	       t.created_at, t.updated_at
	FROM floating_trips t
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id`

const tripWhere = `
	WHERE ($1 = '' OR t.document_no ILIKE '%' || $1 || '%' OR t.area_name ILIKE '%' || $1 || '%'
	       OR d.driver_name ILIKE '%' || $1 || '%' OR v.name ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR t.trip_date >= NULLIF($2, '')::date)
	  AND ($3 = '' OR t.trip_date <= NULLIF($3, '')::date)`

func scanTrip(row pgx.Row) (*models.FloatingTrip, error) {
	var t models.FloatingTrip
	err := row.Scan(&t.ID, &t.DocumentNo, &t.TripDate, &t.DriverID, &t.DriverName,
		&t.VehicleID, &t.VehicleName, &t.AreaName, &t.StartTime, &t.EndTime, &t.StartKm, &t.EndKm,
		&t.FoodAllowance, &t.TotalDistance, &t.MileageAllowance, &t.TotalTime, &t.TimeBonus,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.TotalAmount = allowance.Total(t.FoodAllowance, t.MileageAllowance, t.TimeBonus)
	return &t, nil
}

func collect(rows pgx.Rows, op string) ([]*models.FloatingTrip, error) {
	defer rows.Close()
	trips := []*models.FloatingTrip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%s.Scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s.Rows: %w", op, err)
	}
	return trips, nil
}

func (r *Repository) NextDocumentNo(ctx context.Context) (string, error) {
	var next int64
	query := `SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM floating_trip_doc_seq`
	if err := r.db.QueryRow(ctx, query).Scan(&next); err != nil {
		return "", fmt.Errorf("repository.NextDocumentNo: %w", err)
	}
	return utils.FormatDocumentNo(utils.PrefixFloatingTrip, next), nil
}

func (r *Repository) Create(ctx context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('floating_trip_doc_seq')`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("repository.Create.NextVal: %w", err)
	}

	query := `
		INSERT INTO floating_trips (document_no, trip_date, driver_id, vehicle_id, area_name, start_time,
		                            end_time, start_km, end_km, food_allowance, total_distance,
		                            mileage_allowance, total_time, time_bonus)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, utils.FormatDocumentNo(utils.PrefixFloatingTrip, seq), trip.TripDate,
		trip.DriverID, trip.VehicleID, trip.AreaName, trip.StartTime, trip.EndTime, trip.StartKm, trip.EndKm,
		trip.FoodAllowance, trip.TotalDistance, trip.MileageAllowance, trip.TotalTime, trip.TimeBonus).Scan(&id)
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) FindByID(ctx context.Context, tripID int) (*models.FloatingTrip, error) {
	t, err := scanTrip(r.db.QueryRow(ctx, tripSelect+` WHERE t.id = $1`, tripID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return t, nil
}

// List searches document number, area, driver and vehicle names.
func (r *Repository) List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.FloatingTrip, int, error) {
	query := tripSelect + tripWhere + ` ORDER BY t.trip_date DESC, t.id DESC LIMIT $4 OFFSET $5`
	rows, err := r.db.Query(ctx, query, filter.Search, dates.From, dates.To, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	trips, err := collect(rows, "repository.List")
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM floating_trips t
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id` + tripWhere
	var total int
	if err := r.db.QueryRow(ctx, countQuery, filter.Search, dates.From, dates.To).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return trips, total, nil
}

// ListAll returns every matching trip in date order, for exports.
func (r *Repository) ListAll(ctx context.Context, search string, dates models.TripDateRange) ([]*models.FloatingTrip, error) {
	rows, err := r.db.Query(ctx, tripSelect+tripWhere+` ORDER BY t.trip_date, t.document_no`, search, dates.From, dates.To)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAll.Query: %w", err)
	}
	return collect(rows, "repository.ListAll")
}

func (r *Repository) Update(ctx context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error) {
	query := `
		UPDATE floating_trips
		SET trip_date = $2::date, driver_id = $3, vehicle_id = $4, area_name = $5, start_time = $6,
		    end_time = $7, start_km = $8, end_km = $9, food_allowance = $10, total_distance = $11,
		    mileage_allowance = $12, total_time = $13, time_bonus = $14, updated_at = NOW()
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, trip.ID, trip.TripDate, trip.DriverID, trip.VehicleID, trip.AreaName,
		trip.StartTime, trip.EndTime, trip.StartKm, trip.EndKm, trip.FoodAllowance, trip.TotalDistance,
		trip.MileageAllowance, trip.TotalTime, trip.TimeBonus)
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, trip.ID)
}

func (r *Repository) Delete(ctx context.Context, tripID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM floating_trips WHERE id = $1`, tripID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
