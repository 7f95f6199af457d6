package auth

import (
	"context"
	"net/http"
	"strings"
)

const isAdminKey contextKey = "is_admin"

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns whether the authenticated user is on the admin
// allow-list. Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// ParseAdminEmails splits the ADMIN_EMAILS value into a trimmed list.
func ParseAdminEmails(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if e := strings.TrimSpace(p); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// EmailLookup resolves a user id to the account's email address.
type EmailLookup func(ctx context.Context, userID string) (string, error)

// AdminMiddleware resolves the authenticated user's email and flags the
// request as admin when it appears on the allow-list. Lookup failures and
// missing user ids degrade to non-admin rather than erroring the request.
func AdminMiddleware(adminEmails []string, lookup EmailLookup) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(e)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin := false
			if userID, ok := UserIDFromContext(r.Context()); ok && len(allowed) > 0 {
				if email, err := lookup(r.Context(), userID); err == nil {
					isAdmin = allowed[strings.ToLower(email)]
				}
			}
			ctx := WithIsAdmin(r.Context(), isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
