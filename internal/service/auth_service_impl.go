package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	userRepo repository.UserRepository
}

// NewAuthService creates an AuthService backed by the given user repository.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

// HashPassword produces a bcrypt hash for storage in admin_users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SignIn verifies the email/password pair. Both the unknown-email and the
// wrong-password paths return ErrInvalidCredentials.
func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (*model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		slog.Error("sign-in lookup failed", "error", err)
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	slog.Info("admin signed in", "user_id", user.ID)
	return user, nil
}

// SignInWithGoogle resolves a Google identity to an existing admin account,
// linking the Google id on first use. Unknown identities are rejected; OAuth
// must never mint admin accounts.
func (s *authServiceImpl) SignInWithGoogle(ctx context.Context, info *GoogleUserInfo) (*model.AdminUser, error) {
	user, err := s.userRepo.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("google sign-in for unknown admin", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.userRepo.UpdateGoogleID(ctx, user.ID, info.Sub); err != nil {
		slog.Error("link google id failed", "error", err, "user_id", user.ID)
		return nil, err
	}
	user.GoogleID = info.Sub
	slog.Info("admin linked to google", "user_id", user.ID)
	return user, nil
}
