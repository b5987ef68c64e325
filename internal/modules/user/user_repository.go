package user

import (
	"context"
	"fmt"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for interacting with user storage.
type RepositoryInterface interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error)
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User, passwordHash *string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const userColumns = `id, username, password_hash, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByID", err)
	}
	return user, nil
}

// FindByUsername matches case-insensitively and returns the password hash
// so the caller can verify a login.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, utils.WrapDBError("repository.FindByUsername", err)
	}
	return user, nil
}

func (r *Repository) List(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error) {
	where := `WHERE ($1 = '' OR username ILIKE '%' || $1 || '%') AND ($2 = '' OR status = $2)`
	query := `SELECT ` + userColumns + ` FROM users ` + where + ` ORDER BY username LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Search, filter.Status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.Scan: %w", err)
		}
		user.PasswordHash = ""
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Rows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, filter.Search, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}
	return users, total, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repository.Count: %w", err)
	}
	return n, nil
}

func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRow(ctx, query, user.ID, user.Username, user.PasswordHash, user.Role, user.Status))
	if err != nil {
		return nil, utils.WrapDBError("repository.Create", err)
	}
	return created, nil
}

// Update rewrites username, role and status. The password hash only changes
// when passwordHash is non-nil.
func (r *Repository) Update(ctx context.Context, user *models.User, passwordHash *string) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $2, role = $3, status = $4,
		    password_hash = COALESCE($5, password_hash),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRow(ctx, query, user.ID, user.Username, user.Role, user.Status, passwordHash))
	if err != nil {
		return nil, utils.WrapDBError("repository.Update", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, userID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return utils.WrapDBError("repository.Delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
