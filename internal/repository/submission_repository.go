package repository

import (
	"context"

	"github.com/bamdigital/site-backend/internal/model"
)

// SubmissionRepository defines the persistence interface for contact
// submissions. The backing store is substitutable: PostgreSQL and MongoDB
// implementations exist for production, an in-memory one for tests and tools.
// Implementations perform no input validation; that happens before the store
// is called.
type SubmissionRepository interface {
	// Create persists a new submission, populating sub.ID and sub.CreatedAt.
	// The record is written atomically or not at all.
	Create(ctx context.Context, sub *model.ContactSubmission) error

	// ListAll returns every submission ordered by CreatedAt descending
	// (newest first). No pagination; the full set is returned.
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)

	// MarkRead sets Read=true for the identified record. Marking an
	// already-read record is a no-op success. Returns ErrNotFound for an
	// unknown id.
	MarkRead(ctx context.Context, id string) error

	// Delete permanently removes the record. Returns ErrNotFound for an
	// unknown id; callers decide whether that is worth surfacing.
	Delete(ctx context.Context, id string) error
}
