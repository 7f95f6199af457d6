package flow

// Decision is the route guard's verdict over the current session state.
type Decision int

const (
	// DecisionLoading renders a placeholder while the session resolves.
	DecisionLoading Decision = iota
	// DecisionRedirect sends the client to the login entry point.
	DecisionRedirect
	// DecisionRender shows the protected content.
	DecisionRender
)

// Navigator moves the client between views.
type Navigator interface {
	Replace(path string)
}

// Guard gates a protected view on the session state. It never shows
// protected content before the session has resolved, and it issues at
// most one redirect per unauthenticated resolution.
type Guard struct {
	loginPath  string
	nav        Navigator
	redirected bool
}

// NewGuard creates a Guard that redirects to loginPath via nav.
func NewGuard(loginPath string, nav Navigator) *Guard {
	return &Guard{loginPath: loginPath, nav: nav}
}

// Evaluate maps the session snapshot to a decision. Call it again on
// every session change; a fresh resolution re-arms the redirect.
func (g *Guard) Evaluate(s Session) Decision {
	if s.Resolving {
		g.redirected = false
		return DecisionLoading
	}
	if s.User == nil {
		if !g.redirected {
			g.redirected = true
			g.nav.Replace(g.loginPath)
		}
		return DecisionRedirect
	}
	g.redirected = false
	return DecisionRender
}
