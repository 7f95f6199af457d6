// Package validation holds the pure input checks run before a submission is
// stored. It never mutates its input; trimming and lower-casing happen later,
// in normalization.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bamdigital/site-backend/internal/model"
)

// Kind classifies a validation failure.
type Kind string

const (
	MissingField Kind = "missing_field"
	InvalidEmail Kind = "invalid_email"
)

// Error reports which field failed and how.
type Error struct {
	Field string
	Kind  Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// Matches the form's pattern: non-whitespace-non-@ local part, "@",
// non-whitespace-non-@ domain, ".", non-whitespace tld.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission checks the required fields and email shape of in.
// It returns nil on success, or an *Error for the first failing field.
// Required fields are name, email and message; whitespace-only counts as empty.
func Submission(in model.SubmissionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &Error{Field: "name", Kind: MissingField}
	}
	if strings.TrimSpace(in.Email) == "" {
		return &Error{Field: "email", Kind: MissingField}
	}
	if strings.TrimSpace(in.Message) == "" {
		return &Error{Field: "message", Kind: MissingField}
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return &Error{Field: "email", Kind: InvalidEmail}
	}
	return nil
}
