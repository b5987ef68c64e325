package report

import (
	"context"
	"fmt"

	"fleet-management/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the ledger queries.
type RepositoryInterface interface {
	OpeningBalance(ctx context.Context, driverID int, before string) (float64, error)
	Entries(ctx context.Context, driverID int, from, to string) ([]*models.LedgerEntry, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ledgerSource lists every credit and debit for driver $1. Floating trip
// credits use the whole-unit total the trip screens show.
const ledgerSource = `
	SELECT t.trip_date AS trans_date, t.document_no AS bill_no, 'FIXED_TRIP' AS transaction_type,
	       t.route_name AS description, (t.fixed_allowance + t.food_allowance) AS cr_amount, 0::numeric AS dr_amount,
	       1 AS type_order, t.id AS row_id
	FROM fixed_trips t WHERE t.driver_id = $1
	UNION ALL
	SELECT f.trip_date, f.document_no, 'FLOATING_TRIP', f.area_name,
	       ROUND(f.food_allowance + f.mileage_allowance + f.time_bonus), 0::numeric,
	       2, f.id
	FROM floating_trips f WHERE f.driver_id = $1
	UNION ALL
	SELECT p.payment_date, p.document_no, 'PAYMENT',
	       p.payment_mode || CASE WHEN p.remarks <> '' THEN ' - ' || p.remarks ELSE '' END,
	       0::numeric, p.amount,
	       3, p.id
	FROM payments p WHERE p.driver_id = $1`

// Document numbers are allocated in id order, so row_id keeps FT-9999 ahead
// of FT-10000 where a text sort on bill_no would not.
const entriesQuery = `
	SELECT to_char(l.trans_date, 'YYYY-MM-DD'), l.bill_no, l.transaction_type, l.description, l.cr_amount, l.dr_amount
	FROM (` + ledgerSource + `) l
	WHERE l.trans_date BETWEEN $2::date AND $3::date
	ORDER BY l.trans_date, l.type_order, l.row_id`

// OpeningBalance nets every transaction dated before the given day.
func (r *Repository) OpeningBalance(ctx context.Context, driverID int, before string) (float64, error) {
	query := `SELECT COALESCE(SUM(cr_amount - dr_amount), 0) FROM (` + ledgerSource + `) l WHERE l.trans_date < $2::date`
	var opening float64
	if err := r.db.QueryRow(ctx, query, driverID, before).Scan(&opening); err != nil {
		return 0, fmt.Errorf("repository.OpeningBalance: %w", err)
	}
	return opening, nil
}

// Entries returns the transactions within [from, to] ordered by date, then
// fixed trips, floating trips and payments, each in allocation order.
func (r *Repository) Entries(ctx context.Context, driverID int, from, to string) ([]*models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, entriesQuery, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("repository.Entries.Query: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.LedgerEntry, error) {
		var e models.LedgerEntry
		err := row.Scan(&e.TransDate, &e.BillNo, &e.TransactionType, &e.Description, &e.CrAmount, &e.DrAmount)
		return &e, err
	})
	if err != nil {
		return nil, fmt.Errorf("repository.Entries.Collect: %w", err)
	}
	return entries, nil
}
