package repository

import (
	"context"
	"errors"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository backed by the given pool.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ UserRepository = (*PgUserRepository)(nil)

// Ping verifies database connectivity, for the health endpoint.
func (r *PgUserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const userSelectCols = `id, email, password_hash, COALESCE(google_id, ''), created_at`

func scanAdminUser(scan func(...any) error) (*model.AdminUser, error) {
	var u model.AdminUser
	if err := scan(&u.ID, &u.Email, &u.PasswordHash, &u.GoogleID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID returns the admin user with the given id, or ErrNotFound.
func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM admin_users WHERE id = $1`, id)
	return scanAdminUser(row.Scan)
}

// FindByEmail returns the admin user with the given email, or ErrNotFound.
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM admin_users WHERE email = $1`, email)
	return scanAdminUser(row.Scan)
}

// FindByGoogleID returns the admin user linked to the given Google account,
// or ErrNotFound.
func (r *PgUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.AdminUser, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM admin_users WHERE google_id = $1`, googleID)
	return scanAdminUser(row.Scan)
}

// Create inserts an admin user and populates user.ID and user.CreatedAt.
func (r *PgUserRepository) Create(ctx context.Context, user *model.AdminUser) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (email, password_hash, google_id)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at`,
		user.Email, user.PasswordHash, user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt)
}

// UpdateGoogleID links an admin user to a Google account.
func (r *PgUserRepository) UpdateGoogleID(ctx context.Context, id, googleID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET google_id = $1 WHERE id = $2`, googleID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
