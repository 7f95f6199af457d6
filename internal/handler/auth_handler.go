package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/pkg/auth"
)

// AuthHandler handles password sign-in, sign-out and session introspection
// for the admin panel.
type AuthHandler struct {
	authService   service.AuthService
	userRepo      repository.UserRepository
	sessionSecret []byte
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService, userRepo repository.UserRepository, sessionSecret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		userRepo:      userRepo,
		sessionSecret: sessionSecret,
		secureCookies: secureCookies,
	}
}

// loginRequest is the expected JSON body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. On success it issues the session
// cookie; rejections always answer 401 invalid_credentials so the response
// never reveals whether the email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "credentials_required")
		return
	}

	user, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}

	auth.SetSessionCookie(w, user.ID, h.sessionSecret, h.secureCookies)
	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
}

// Logout handles POST /api/auth/logout. Always succeeds; the cookie is
// cleared whether or not a valid session was presented.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// meResponse is the JSON response for GET /api/me.
type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Me handles GET /api/me. It resolves the session cookie to the admin
// account so the frontend can finish its session-resolution phase.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := auth.VerifySessionToken(cookie.Value, h.sessionSecret)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_session")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown_user")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Email: user.Email})
}
