package payment

import (
	"context"
	"fmt"
	"sort"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for payment storage.
type RepositoryInterface interface {
	NextDocumentNo(ctx context.Context) (string, error)
	Balance(ctx context.Context, driverID, excludePaymentID int) (*models.DriverBalance, error)
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, paymentID int) (*models.Payment, error)
	List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.Payment, int, error)
	Update(ctx context.Context, p *models.Payment) (*models.Payment, error)
	Delete(ctx context.Context, paymentID int) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Floating trip credits use the same whole-unit rounding as the calculator.
const balanceQuery = `
	SELECT
	    COALESCE((SELECT SUM(fixed_allowance + food_allowance) FROM fixed_trips WHERE driver_id = $1), 0)
	  + COALESCE((SELECT SUM(ROUND(food_allowance + mileage_allowance + time_bonus)) FROM floating_trips WHERE driver_id = $1), 0),
	    COALESCE((SELECT SUM(amount) FROM payments WHERE driver_id = $1 AND id <> $2), 0)`

func balance(ctx context.Context, q querier, driverID, excludePaymentID int) (*models.DriverBalance, error) {
	b := &models.DriverBalance{DriverID: driverID}
	if err := q.QueryRow(ctx, balanceQuery, driverID, excludePaymentID).Scan(&b.Credit, &b.Debit); err != nil {
		return nil, err
	}
	b.Balance = allowance.Round2(b.Credit - b.Debit)
	return b, nil
}

const paymentSelect = `
	SELECT p.id, p.document_no, to_char(p.payment_date, 'YYYY-MM-DD'), p.driver_id, d.driver_name,
	       p.amount, p.payment_mode, p.current_balance, p.remarks, p.created_at, p.updated_at
	FROM payments p
	JOIN drivers d ON d.id = p.driver_id`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.DocumentNo, &p.PaymentDate, &p.DriverID, &p.DriverName,
		&p.Amount, &p.PaymentMode, &p.CurrentBalance, &p.Remarks, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) NextDocumentNo(ctx context.Context) (string, error) {
	var next int64
	query := `SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM payment_doc_seq`
	if err := r.db.QueryRow(ctx, query).Scan(&next); err != nil {
		return "", fmt.Errorf("repository.NextDocumentNo: %w", err)
	}
	return utils.FormatDocumentNo(utils.PrefixPayment, next), nil
}

// Balance returns credits minus debits for a driver. A non-zero
// excludePaymentID leaves that payment out of the debits.
func (r *Repository) Balance(ctx context.Context, driverID, excludePaymentID int) (*models.DriverBalance, error) {
	b, err := balance(ctx, r.db, driverID, excludePaymentID)
	if err != nil {
		return nil, fmt.Errorf("repository.Balance: %w", err)
	}
	return b, nil
}

// withTx runs fn in a transaction and commits when it returns nil.
func (r *Repository) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockDrivers takes the advisory lock of every driver in lockOrder, so
// concurrent payments see each other's debits without deadlocking.
func lockDrivers(ctx context.Context, tx pgx.Tx, driverIDs ...int) error {
	for _, id := range lockOrder(driverIDs...) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, id); err != nil {
			return fmt.Errorf("lock driver %d: %w", id, err)
		}
	}
	return nil
}

// lockOrder returns the distinct positive ids in ascending order.
func lockOrder(driverIDs ...int) []int64 {
	seen := make(map[int]bool, len(driverIDs))
	out := make([]int64, 0, len(driverIDs))
	for _, id := range driverIDs {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, int64(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Create inserts the payment and stores the driver's balance after it.
func (r *Repository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	var id int
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if err := lockDrivers(ctx, tx, p.DriverID); err != nil {
			return err
		}
		b, err := balance(ctx, tx, p.DriverID, 0)
		if err != nil {
			return err
		}
		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('payment_doc_seq')`).Scan(&seq); err != nil {
			return err
		}
		query := `
			INSERT INTO payments (document_no, payment_date, driver_id, amount, payment_mode, current_balance, remarks)
			VALUES ($1, $2::date, $3, $4, $5, $6, $7)
			RETURNING id`
		return tx.QueryRow(ctx, query, utils.FormatDocumentNo(utils.PrefixPayment, seq), p.PaymentDate,
			p.DriverID, p.Amount, p.PaymentMode, allowance.Round2(b.Balance-p.Amount), p.Remarks).Scan(&id)
	})
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) FindByID(ctx context.Context, paymentID int) (*models.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, paymentID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return p, nil
}

// List searches document number, driver name and remarks. Status filters
// on payment mode.
func (r *Repository) List(ctx context.Context, filter models.ListFilter, dates models.TripDateRange) ([]*models.Payment, int, error) {
	where := `
	WHERE ($1 = '' OR p.document_no ILIKE '%' || $1 || '%' OR d.driver_name ILIKE '%' || $1 || '%'
	       OR p.remarks ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR p.payment_mode = $2)
	  AND ($3 = '' OR p.payment_date >= NULLIF($3, '')::date)
	  AND ($4 = '' OR p.payment_date <= NULLIF($4, '')::date)`
	args := []interface{}{filter.Search, filter.Status, dates.From, dates.To}

	query := paymentSelect + where + ` ORDER BY p.payment_date DESC, p.id DESC LIMIT $5 OFFSET $6`
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM payments p JOIN drivers d ON d.id = p.driver_id` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return payments, total, nil
}

// Update rewrites the payment and recomputes its current_balance with the
// old amount left out.
func (r *Repository) Update(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		// a payment moved to another driver changes both drivers' balances
		var previousDriverID int
		if err := tx.QueryRow(ctx, `SELECT driver_id FROM payments WHERE id = $1 FOR UPDATE`, p.ID).Scan(&previousDriverID); err != nil {
			return err
		}
		if err := lockDrivers(ctx, tx, previousDriverID, p.DriverID); err != nil {
			return err
		}
		b, err := balance(ctx, tx, p.DriverID, p.ID)
		if err != nil {
			return err
		}
		query := `
			UPDATE payments
			SET payment_date = $2::date, driver_id = $3, amount = $4, payment_mode = $5,
			    current_balance = $6, remarks = $7, updated_at = NOW()
			WHERE id = $1`
		cmdTag, err := tx.Exec(ctx, query, p.ID, p.PaymentDate, p.DriverID, p.Amount, p.PaymentMode,
			allowance.Round2(b.Balance-p.Amount), p.Remarks)
		if err != nil {
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	return r.FindByID(ctx, p.ID)
}

func (r *Repository) Delete(ctx context.Context, paymentID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
