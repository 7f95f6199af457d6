package service

import (
	"context"

	"github.com/bamdigital/site-backend/internal/model"
)

// SubmissionService defines the business logic for contact submissions.
type SubmissionService interface {
	// Submit validates and normalizes the input, then stores a new
	// submission. Validation failures are returned as *validation.Error and
	// the store is never called for them.
	Submit(ctx context.Context, in model.SubmissionInput) (*model.ContactSubmission, error)

	// ListAll returns every submission, newest first.
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)

	// MarkRead flips a submission to read. Idempotent.
	MarkRead(ctx context.Context, id string) error

	// Delete permanently removes a submission.
	Delete(ctx context.Context, id string) error

	// Stats derives the aggregate counts from the current stored set.
	Stats(ctx context.Context) (model.SubmissionStats, error)
}
