package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

const submissionSelectCols = `id, name, email, COALESCE(company, ''), COALESCE(phone, ''), COALESCE(service, ''), message, created_at, read`

// Create inserts a new contact_submissions row and populates sub.ID and
// sub.CreatedAt from the database RETURNING clause.
func (r *PgSubmissionRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, company, phone, service, message)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
		 RETURNING id, created_at, read`,
		sub.Name, sub.Email, sub.Company, sub.Phone, sub.Service, sub.Message,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.Read)
	if err != nil {
		return classifyPgError(err)
	}
	return nil
}

// ListAll returns every submission, newest first.
func (r *PgSubmissionRepository) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionSelectCols+` FROM contact_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, classifyPgError(err)
	}
	defer rows.Close()

	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.Phone, &s.Service, &s.Message, &s.CreatedAt, &s.Read); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// MarkRead sets read=true. Postgres counts matched rows regardless of whether
// the value changed, so an already-read record is an affected row and the call
// stays an idempotent success.
func (r *PgSubmissionRepository) MarkRead(ctx context.Context, id string) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return classifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes the submission.
func (r *PgSubmissionRepository) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return classifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// classifyPgError maps driver errors onto the repository taxonomy while
// keeping the original detail in the message.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501": // insufficient_privilege
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case "28000", "28P01": // invalid_authorization_specification, invalid_password
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
