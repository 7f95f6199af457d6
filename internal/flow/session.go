// Package flow implements the client-facing state machines behind the
// contact form and the admin dashboard. Each flow is safe for use from
// multiple goroutines; callers read snapshots and drive transitions
// through methods.
package flow

import (
	"context"
	"sync"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/service"
)

// Session is a snapshot of the current authentication state.
// While Resolving is true the identity is not yet known.
type Session struct {
	User      *model.AdminUser
	Resolving bool
}

// Authenticated reports whether the session holds a signed-in user.
func (s Session) Authenticated() bool {
	return !s.Resolving && s.User != nil
}

// SessionResolver restores a previously established session, for example
// from a stored cookie. A nil user with a nil error means no session.
type SessionResolver func(ctx context.Context) (*model.AdminUser, error)

// SessionProvider owns the process-wide session state. It is the only
// writer; consumers read snapshots via Current or subscribe to changes.
type SessionProvider struct {
	mu       sync.Mutex
	auth     service.AuthService
	resolver SessionResolver

	resolving bool
	user      *model.AdminUser

	subs    map[int]func(Session)
	nextSub int
}

// NewSessionProvider creates a provider in the Resolving state. resolver
// may be nil, in which case Resolve settles to Unauthenticated.
func NewSessionProvider(auth service.AuthService, resolver SessionResolver) *SessionProvider {
	return &SessionProvider{
		auth:      auth,
		resolver:  resolver,
		resolving: true,
		subs:      make(map[int]func(Session)),
	}
}

// Current returns a snapshot of the session state.
func (p *SessionProvider) Current() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Session{User: p.user, Resolving: p.resolving}
}

// Subscribe registers fn to be called on every state transition. The
// returned function removes the subscription.
func (p *SessionProvider) Subscribe(fn func(Session)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// notify snapshots the subscriber list and state under the lock, then
// calls subscribers without holding it.
func (p *SessionProvider) notify() {
	p.mu.Lock()
	snapshot := Session{User: p.user, Resolving: p.resolving}
	fns := make([]func(Session), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Resolve settles the initial Resolving state. An error or a missing
// session both settle to Unauthenticated; the error is returned for
// logging but does not block the transition.
func (p *SessionProvider) Resolve(ctx context.Context) error {
	var (
		user *model.AdminUser
		err  error
	)
	if p.resolver != nil {
		user, err = p.resolver(ctx)
	}

	p.mu.Lock()
	p.resolving = false
	if err == nil {
		p.user = user
	} else {
		p.user = nil
	}
	p.mu.Unlock()

	p.notify()
	return err
}

// SignIn verifies the credentials and transitions to Authenticated on
// success. On failure the state stays Unauthenticated; no partial
// session state is kept.
func (p *SessionProvider) SignIn(ctx context.Context, email, password string) error {
	user, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		p.mu.Lock()
		p.resolving = false
		p.user = nil
		p.mu.Unlock()
		p.notify()
		return err
	}

	p.mu.Lock()
	p.resolving = false
	p.user = user
	p.mu.Unlock()
	p.notify()
	return nil
}

// SignOut transitions to Unauthenticated unconditionally.
func (p *SessionProvider) SignOut() {
	p.mu.Lock()
	p.resolving = false
	p.user = nil
	p.mu.Unlock()
	p.notify()
}
