package flow

import (
	"context"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/service"
)

// Shared test doubles for the flow package.

type stubSubmissionService struct {
	submitFunc   func(ctx context.Context, in model.SubmissionInput) (*model.ContactSubmission, error)
	listAllFunc  func(ctx context.Context) ([]*model.ContactSubmission, error)
	markReadFunc func(ctx context.Context, id string) error
	deleteFunc   func(ctx context.Context, id string) error
}

func (s *stubSubmissionService) Submit(ctx context.Context, in model.SubmissionInput) (*model.ContactSubmission, error) {
	if s.submitFunc != nil {
		return s.submitFunc(ctx, in)
	}
	return &model.ContactSubmission{ID: "sub-1"}, nil
}

func (s *stubSubmissionService) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	if s.listAllFunc != nil {
		return s.listAllFunc(ctx)
	}
	return nil, nil
}

func (s *stubSubmissionService) MarkRead(ctx context.Context, id string) error {
	if s.markReadFunc != nil {
		return s.markReadFunc(ctx, id)
	}
	return nil
}

func (s *stubSubmissionService) Delete(ctx context.Context, id string) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil
}

func (s *stubSubmissionService) Stats(ctx context.Context) (model.SubmissionStats, error) {
	subs, err := s.ListAll(ctx)
	if err != nil {
		return model.SubmissionStats{}, err
	}
	return model.CountStats(subs), nil
}

type stubAuthService struct {
	signInFunc func(ctx context.Context, email, password string) (*model.AdminUser, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*model.AdminUser, error) {
	if s.signInFunc != nil {
		return s.signInFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) SignInWithGoogle(ctx context.Context, info *service.GoogleUserInfo) (*model.AdminUser, error) {
	return nil, service.ErrInvalidCredentials
}

type recordingNavigator struct {
	replaced []string
}

func (n *recordingNavigator) Replace(path string) {
	n.replaced = append(n.replaced, path)
}
