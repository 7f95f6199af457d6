package service

import (
	"context"
	"log/slog"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/validation"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo repository.SubmissionRepository
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionServiceImpl{repo: repo}
}

// Submit validates the raw input, normalizes it (trim, lower-case email) and
// persists the submission. The store assigns ID, CreatedAt and Read=false.
func (s *submissionServiceImpl) Submit(ctx context.Context, in model.SubmissionInput) (*model.ContactSubmission, error) {
	if err := validation.Submission(in); err != nil {
		return nil, err
	}
	in.Normalize()

	sub := &model.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		slog.Error("create submission failed", "error", err, "email", sub.Email)
		return nil, err
	}
	slog.Info("submission created", "id", sub.ID, "service", sub.Service)
	return sub, nil
}

// ListAll returns every submission, newest first.
func (s *submissionServiceImpl) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	return s.repo.ListAll(ctx)
}

// MarkRead flips a submission to read.
func (s *submissionServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Delete permanently removes a submission.
func (s *submissionServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats derives the aggregate counts from a fresh list.
func (s *submissionServiceImpl) Stats(ctx context.Context) (model.SubmissionStats, error) {
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return model.SubmissionStats{}, err
	}
	return model.CountStats(subs), nil
}
