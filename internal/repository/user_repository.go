package repository

import (
	"context"

	"github.com/bamdigital/site-backend/internal/model"
)

// UserRepository defines the persistence interface for admin accounts.
// Admin users always live in Postgres; only the submission store is
// substitutable.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.AdminUser, error)
	Create(ctx context.Context, user *model.AdminUser) error
	UpdateGoogleID(ctx context.Context, id, googleID string) error
}
