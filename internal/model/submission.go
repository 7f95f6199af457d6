package model

import (
	"strings"
	"time"
)

// Service categories offered on the site. A submission may also leave the
// service unset.
const (
	ServiceShopify      = "shopify"
	ServiceWebApp       = "webapp"
	ServiceAI           = "ai"
	ServiceMarketing    = "marketing"
	ServiceSEO          = "seo"
	ServiceOptimization = "optimization"
)

// Services lists every selectable service category, in form order.
var Services = []string{
	ServiceShopify,
	ServiceWebApp,
	ServiceAI,
	ServiceMarketing,
	ServiceSEO,
	ServiceOptimization,
}

// KnownService reports whether s is one of the fixed service categories.
// The empty string (no selection) is not a known service.
func KnownService(s string) bool {
	for _, v := range Services {
		if s == v {
			return true
		}
	}
	return false
}

// ContactSubmission represents one inquiry submitted via the contact form.
// ID and CreatedAt are assigned by the store on creation; Read starts false
// and only ever transitions to true.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// SubmissionInput carries the caller-supplied fields of a new submission.
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Normalize trims all free-text fields and lower-cases the email.
// This happens before storage, never as part of validation.
func (in *SubmissionInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Company = strings.TrimSpace(in.Company)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
}

// SubmissionStats are the aggregate counts shown on the dashboard.
// They are always derived from a submission list, never stored.
type SubmissionStats struct {
	Total  int `json:"total"`
	Read   int `json:"read"`
	Unread int `json:"unread"`
}

// CountStats derives the aggregate counts from subs.
func CountStats(subs []*ContactSubmission) SubmissionStats {
	stats := SubmissionStats{Total: len(subs)}
	for _, s := range subs {
		if s.Read {
			stats.Read++
		} else {
			stats.Unread++
		}
	}
	return stats
}
