package flow

import (
	"context"
	"sync"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/service"
)

// Confirmer asks the operator to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter surfaces a failure to the operator.
type Alerter interface {
	Alert(msg string)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// AlerterFunc adapts a function to the Alerter interface.
type AlerterFunc func(msg string)

func (f AlerterFunc) Alert(msg string) { f(msg) }

const (
	promptDelete     = "Delete this submission? This cannot be undone."
	alertMarkRead    = "Could not mark the submission as read."
	alertDelete      = "Could not delete the submission."
	loadErrorMessage = "Could not load submissions."
)

// Dashboard holds the admin view's local copy of the submission list.
// Local mutations are applied only after the store confirms; a failed
// store call leaves local state unchanged and raises an alert. Refresh
// replaces the whole list, which is also the recovery path when local
// and remote state are suspected to have diverged.
type Dashboard struct {
	mu      sync.Mutex
	svc     service.SubmissionService
	confirm Confirmer
	alert   Alerter

	subs    []*model.ContactSubmission
	loadErr string
}

// NewDashboard creates an empty dashboard.
func NewDashboard(svc service.SubmissionService, confirm Confirmer, alert Alerter) *Dashboard {
	return &Dashboard{svc: svc, confirm: confirm, alert: alert}
}

// Load populates the local list from the store. On failure the list is
// left empty and the error message is kept for inline display.
func (d *Dashboard) Load(ctx context.Context) error {
	subs, err := d.svc.ListAll(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.subs = nil
		d.loadErr = loadErrorMessage
		return err
	}
	d.subs = subs
	d.loadErr = ""
	return nil
}

// Refresh re-runs the load, replacing the entire local list.
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// Submissions returns a copy of the local list.
func (d *Dashboard) Submissions() []*model.ContactSubmission {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*model.ContactSubmission, len(d.subs))
	copy(out, d.subs)
	return out
}

// LoadError returns the inline error message from the last failed load,
// or empty when the last load succeeded.
func (d *Dashboard) LoadError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadErr
}

// Stats derives the counts from the current local list on every call.
func (d *Dashboard) Stats() model.SubmissionStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return model.CountStats(d.subs)
}

// MarkRead marks the submission read in the store, then patches the one
// matching local record. On failure it alerts and changes nothing.
func (d *Dashboard) MarkRead(ctx context.Context, id string) error {
	if err := d.svc.MarkRead(ctx, id); err != nil {
		d.alert.Alert(alertMarkRead)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		if s.ID == id {
			s.Read = true
			break
		}
	}
	return nil
}

// Delete asks for confirmation, deletes from the store, then removes
// the local record. A declined confirmation is a silent no-op. On store
// failure it alerts and changes nothing.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if !d.confirm.Confirm(promptDelete) {
		return nil
	}

	if err := d.svc.Delete(ctx, id); err != nil {
		d.alert.Alert(alertDelete)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.subs {
		if s.ID == id {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			break
		}
	}
	return nil
}
