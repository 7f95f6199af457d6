package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/pkg/auth"
)

var testSecret = auth.SessionSecretBytes("test-session-secret")

// ---------------------------------------------------------------------------
// mocks
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signInFunc           func(ctx context.Context, email, password string) (*model.AdminUser, error)
	signInWithGoogleFunc func(ctx context.Context, info *service.GoogleUserInfo) (*model.AdminUser, error)
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*model.AdminUser, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockAuthService) SignInWithGoogle(ctx context.Context, info *service.GoogleUserInfo) (*model.AdminUser, error) {
	if m.signInWithGoogleFunc != nil {
		return m.signInWithGoogleFunc(ctx, info)
	}
	return nil, service.ErrInvalidCredentials
}

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.AdminUser, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.AdminUser, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.AdminUser) error { return nil }

func (m *mockUserRepo) UpdateGoogleID(ctx context.Context, id, googleID string) error { return nil }

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName() {
			return c
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		signInFunc: func(ctx context.Context, email, password string) (*model.AdminUser, error) {
			return &model.AdminUser{ID: "admin-1", Email: "admin@bam.com"}, nil
		},
	}
	h := NewAuthHandler(mock, &mockUserRepo{}, testSecret, false)

	body := `{"email":"admin@bam.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected the session cookie to be HttpOnly")
	}
	userID, err := auth.VerifySessionToken(cookie.Value, testSecret)
	if err != nil {
		t.Fatalf("session token does not verify: %v", err)
	}
	if userID != "admin-1" {
		t.Errorf("expected token for admin-1, got %q", userID)
	}

	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["email"] != "admin@bam.com" {
		t.Errorf("expected email in response, got %q", resp["email"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	body := `{"email":"admin@bam.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "invalid_credentials" {
		t.Errorf("expected invalid_credentials, got %q", resp["error"])
	}
	if sessionCookie(rec) != nil {
		t.Error("expected no session cookie on a rejected login")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("nope"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected an expiring session cookie")
	}
	if cookie.Value != "" {
		t.Errorf("expected an empty cookie value, got %q", cookie.Value)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	// Logging out without a session is not an error.
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Me
// ---------------------------------------------------------------------------

func TestAuthHandler_Me_Success(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.AdminUser, error) {
			if id != "admin-1" {
				t.Errorf("expected lookup for admin-1, got %q", id)
			}
			return &model.AdminUser{ID: "admin-1", Email: "admin@bam.com"}, nil
		},
	}
	h := NewAuthHandler(&mockAuthService{}, userRepo, testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.SessionCookieName(),
		Value: auth.CreateSessionToken("admin-1", testSecret),
	})
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp meResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.ID != "admin-1" || resp.Email != "admin@bam.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Me_NoCookie(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_TamperedToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.SessionCookieName(),
		Value: auth.CreateSessionToken("admin-1", []byte("wrong-secret-wrong-secret-wrong!")),
	})
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a tampered token, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_DeletedUser(t *testing.T) {
	// A valid token for an account that no longer exists must not resolve.
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.SessionCookieName(),
		Value: auth.CreateSessionToken("gone", testSecret),
	})
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
