package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/internal/validation"
)

// FormStatus is the contact form's lifecycle state.
type FormStatus int

const (
	StatusIdle FormStatus = iota
	StatusSending
	StatusSuccess
	StatusError
)

// DefaultResetDelay is how long Success and Error are shown before the
// form reverts to Idle.
const DefaultResetDelay = 5 * time.Second

// User-facing messages keyed by failure category.
const (
	msgNameRequired    = "Please fill in your name."
	msgEmailRequired   = "Please fill in your email address."
	msgMessageRequired = "Please fill in your message."
	msgInvalidEmail    = "Please enter a valid email address."
	msgConnectivity    = "Unable to reach the server. Please check your connection and try again."
	msgSystemError     = "Something went wrong on our end. Please try again later."
	msgGeneric         = "Failed to send your message. Please try again."
)

// ContactForm drives the Idle -> Sending -> (Success | Error) -> Idle
// machine for one form instance. Terminal states auto-revert to Idle
// after ResetDelay, clearing any error message.
type ContactForm struct {
	mu         sync.Mutex
	svc        service.SubmissionService
	status     FormStatus
	errMsg     string
	input      model.SubmissionInput
	resetDelay time.Duration
	resetGen   int
}

// NewContactForm creates an idle form with the default reset delay.
func NewContactForm(svc service.SubmissionService) *ContactForm {
	return &ContactForm{svc: svc, resetDelay: DefaultResetDelay}
}

// SetResetDelay overrides the auto-reset delay.
func (f *ContactForm) SetResetDelay(d time.Duration) {
	f.mu.Lock()
	f.resetDelay = d
	f.mu.Unlock()
}

// SetInput replaces the held form input.
func (f *ContactForm) SetInput(in model.SubmissionInput) {
	f.mu.Lock()
	f.input = in
	f.mu.Unlock()
}

// Input returns the held form input.
func (f *ContactForm) Input() model.SubmissionInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Status returns the current status and, in StatusError, the message.
func (f *ContactForm) Status() (FormStatus, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.errMsg
}

// Submit runs the full submission attempt with the held input. A submit
// while one is already in flight is ignored without side effects.
func (f *ContactForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.status == StatusSending {
		f.mu.Unlock()
		return
	}
	f.status = StatusSending
	f.errMsg = ""
	f.resetGen++
	in := f.input
	f.mu.Unlock()

	_, err := f.svc.Submit(ctx, in)
	if err != nil {
		f.fail(messageFor(err))
		return
	}

	f.mu.Lock()
	f.status = StatusSuccess
	f.input = model.SubmissionInput{}
	f.mu.Unlock()
	f.scheduleReset()
}

func (f *ContactForm) fail(msg string) {
	f.mu.Lock()
	f.status = StatusError
	f.errMsg = msg
	f.mu.Unlock()
	f.scheduleReset()
}

// scheduleReset reverts a terminal state to Idle after resetDelay. The
// generation counter drops resets that a newer submit has superseded.
func (f *ContactForm) scheduleReset() {
	f.mu.Lock()
	gen := f.resetGen
	delay := f.resetDelay
	f.mu.Unlock()

	time.AfterFunc(delay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.resetGen != gen || f.status == StatusSending {
			return
		}
		f.status = StatusIdle
		f.errMsg = ""
	})
}

// messageFor picks the user-facing message for a failed submit.
func messageFor(err error) string {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		if vErr.Kind == validation.InvalidEmail {
			return msgInvalidEmail
		}
		switch vErr.Field {
		case "name":
			return msgNameRequired
		case "email":
			return msgEmailRequired
		case "message":
			return msgMessageRequired
		}
	}
	switch {
	case errors.Is(err, repository.ErrPermissionDenied):
		return msgConnectivity
	case errors.Is(err, repository.ErrUnavailable):
		return msgSystemError
	}
	return msgGeneric
}
