package service

import (
	"context"
	"errors"

	"github.com/bamdigital/site-backend/internal/model"
)

// ErrInvalidCredentials is returned when the email or password is wrong.
// Callers must not distinguish an unknown email from a bad password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// GoogleUserInfo is the identity returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	Sub   string
	Email string
}

// AuthService defines the sign-in logic for the admin panel.
type AuthService interface {
	// SignIn verifies an email/password pair against the stored admin
	// accounts. Fails with ErrInvalidCredentials on rejection.
	SignIn(ctx context.Context, email, password string) (*model.AdminUser, error)

	// SignInWithGoogle resolves a Google identity to an existing admin
	// account. It never creates accounts: an unknown identity fails with
	// ErrInvalidCredentials. A matching email links the Google id.
	SignInWithGoogle(ctx context.Context, info *GoogleUserInfo) (*model.AdminUser, error)
}
