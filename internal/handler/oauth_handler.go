package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookieName = "oauth_state"

// generateOAuthState produces a random state string for CSRF protection.
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func setStateCookie(w http.ResponseWriter, state string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// verifyOAuthState compares the state cookie against the query parameter.
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// OAuthHandler implements the optional Google sign-in for admins. It only
// resolves existing admin accounts; it never creates one.
type OAuthHandler struct {
	authService   service.AuthService
	googleConfig  *oauth2.Config
	sessionSecret []byte
	frontendURL   string
	secureCookies bool
}

// OAuthConfig configures the OAuthHandler.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string
	SessionSecret      []byte
	FrontendURL        string
	SecureCookies      bool
}

// NewOAuthHandler creates an OAuthHandler.
func NewOAuthHandler(authService service.AuthService, cfg OAuthConfig) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		googleConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		sessionSecret: cfg.SessionSecret,
		frontendURL:   cfg.FrontendURL,
		secureCookies: cfg.SecureCookies,
	}
}

// Enabled reports whether Google sign-in is configured.
func (h *OAuthHandler) Enabled() bool {
	return h.googleConfig.ClientID != "" && h.googleConfig.ClientSecret != ""
}

// googleUserInfo is the Google userinfo API response.
type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// GoogleLoginURL returns the Google authorization URL (GET /api/auth/google/login).
func (h *OAuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	setStateCookie(w, state, h.secureCookies)
	url := h.googleConfig.AuthCodeURL(state)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GoogleCallback handles the OAuth callback (GET /api/auth/google/callback).
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=invalid_state", http.StatusFound)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=no_code", http.StatusFound)
		return
	}

	token, err := h.googleConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=exchange_failed", http.StatusFound)
		return
	}

	client := h.googleConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=userinfo_failed", http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=decode_failed", http.StatusFound)
		return
	}

	user, err := h.authService.SignInWithGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:   info.Sub,
		Email: info.Email,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Redirect(w, r, h.frontendURL+"/admin/login?error=not_an_admin", http.StatusFound)
			return
		}
		http.Redirect(w, r, h.frontendURL+"/admin/login?error=signin_failed", http.StatusFound)
		return
	}

	auth.SetSessionCookie(w, user.ID, h.sessionSecret, h.secureCookies)
	http.Redirect(w, r, h.frontendURL+"/admin", http.StatusFound)
}
