package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockUserRepository — stub for testing
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.AdminUser, error)
	findByEmailFunc    func(ctx context.Context, email string) (*model.AdminUser, error)
	findByGoogleIDFunc func(ctx context.Context, googleID string) (*model.AdminUser, error)
	createFunc         func(ctx context.Context, user *model.AdminUser) error
	updateGoogleIDFunc func(ctx context.Context, id, googleID string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.AdminUser, error) {
	if m.findByGoogleIDFunc != nil {
		return m.findByGoogleIDFunc(ctx, googleID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.AdminUser) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdateGoogleID(ctx context.Context, id, googleID string) error {
	if m.updateGoogleIDFunc != nil {
		return m.updateGoogleIDFunc(ctx, id, googleID)
	}
	return nil
}

func adminWithPassword(t *testing.T, email, password string) *model.AdminUser {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &model.AdminUser{ID: "admin-1", Email: email, PasswordHash: hash}
}

// ---------------------------------------------------------------------------
// SignIn tests
// ---------------------------------------------------------------------------

func TestAuthService_SignIn_Success(t *testing.T) {
	admin := adminWithPassword(t, "admin@example.com", "correct-horse")
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.AdminUser, error) {
			if email != "admin@example.com" {
				t.Errorf("expected normalized email, got %q", email)
			}
			return admin, nil
		},
	}
	svc := NewAuthService(mock)

	user, err := svc.SignIn(context.Background(), "  Admin@Example.COM ", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "admin-1" {
		t.Errorf("expected admin-1, got %q", user.ID)
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	admin := adminWithPassword(t, "admin@example.com", "correct-horse")
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return admin, nil
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignIn(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{})

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_SignIn_RepositoryErrorNotMasked(t *testing.T) {
	dbErr := errors.New("connection refused")
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return nil, dbErr
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignIn(context.Background(), "admin@example.com", "pw")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("infrastructure failures must not look like bad credentials")
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("expected repository error to pass through, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SignInWithGoogle tests
// ---------------------------------------------------------------------------

func TestAuthService_SignInWithGoogle_LinkedAccount(t *testing.T) {
	admin := &model.AdminUser{ID: "admin-1", Email: "admin@example.com", GoogleID: "goog-1"}
	mock := &mockUserRepository{
		findByGoogleIDFunc: func(ctx context.Context, googleID string) (*model.AdminUser, error) {
			if googleID == "goog-1" {
				return admin, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(mock)

	user, err := svc.SignInWithGoogle(context.Background(), &GoogleUserInfo{Sub: "goog-1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "admin-1" {
		t.Errorf("expected admin-1, got %q", user.ID)
	}
}

func TestAuthService_SignInWithGoogle_LinksByEmail(t *testing.T) {
	admin := &model.AdminUser{ID: "admin-1", Email: "admin@example.com"}
	var linkedID, linkedGoogleID string
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return admin, nil
		},
		updateGoogleIDFunc: func(ctx context.Context, id, googleID string) error {
			linkedID, linkedGoogleID = id, googleID
			return nil
		},
	}
	svc := NewAuthService(mock)

	user, err := svc.SignInWithGoogle(context.Background(), &GoogleUserInfo{Sub: "goog-9", Email: "Admin@Example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linkedID != "admin-1" || linkedGoogleID != "goog-9" {
		t.Errorf("expected link admin-1/goog-9, got %s/%s", linkedID, linkedGoogleID)
	}
	if user.GoogleID != "goog-9" {
		t.Errorf("expected returned user to carry the linked id, got %q", user.GoogleID)
	}
}

func TestAuthService_SignInWithGoogle_UnknownIdentityRejected(t *testing.T) {
	created := false
	mock := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.AdminUser) error {
			created = true
			return nil
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignInWithGoogle(context.Background(), &GoogleUserInfo{Sub: "goog-x", Email: "stranger@example.com"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if created {
		t.Error("OAuth sign-in must never create admin accounts")
	}
}
