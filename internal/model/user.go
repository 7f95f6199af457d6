package model

import "time"

// AdminUser is an account allowed to sign in to the admin panel.
// PasswordHash is a bcrypt hash; GoogleID is set when the account is
// linked for OAuth sign-in.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
