package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/domain/user"
	"github.com/movielog/movielog/internal/http/handlers"
	"github.com/movielog/movielog/internal/http/middlewares"
	"github.com/movielog/movielog/internal/repo/postgres"
	"github.com/movielog/movielog/internal/security"
)

type fakeUserStore struct {
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
	createFn     func(ctx context.Context, email, passwordHash, name string) (user.User, error)
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}

	return user.User{}, user.ErrNotFound
}

func (f *fakeUserStore) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, email, passwordHash, name)
	}

	return user.User{ID: newUUID(), Email: email, PasswordHash: passwordHash, Name: name}, nil
}

type fakeSessionManager struct {
	createFn  func(ctx context.Context, userID string) (string, error)
	destroyFn func(ctx context.Context, sid string) error
	destroyed string
}

func (f *fakeSessionManager) Create(ctx context.Context, userID string) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, userID)
	}

	return "sid-" + userID, nil
}

func (f *fakeSessionManager) Destroy(ctx context.Context, sid string) error {
	f.destroyed = sid

	if f.destroyFn != nil {
		return f.destroyFn(ctx, sid)
	}

	return nil
}

func (f *fakeSessionManager) TTL() time.Duration {
	return time.Hour
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.SessionCookie {
			return c
		}
	}

	return nil
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("hunter22hunter22")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	known := user.User{ID: newUUID(), Email: "ada@example.com", PasswordHash: hash, Name: "ada"}

	store := &fakeUserStore{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			if email == known.Email {
				return known, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}

	tests := []struct {
		name           string
		form           url.Values
		wantStatusCode int
		wantInBody     string
		wantCookie     bool
	}{
		{
			name:           "success_sets_session_cookie",
			form:           url.Values{"email": {"ada@example.com"}, "password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusSeeOther,
			wantCookie:     true,
		},
		{
			name:           "wrong_password",
			form:           url.Values{"email": {"ada@example.com"}, "password": {"not-the-password"}},
			wantStatusCode: http.StatusUnauthorized,
			wantInBody:     "Email or password is incorrect",
		},
		{
			name:           "unknown_email",
			form:           url.Values{"email": {"ghost@example.com"}, "password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusUnauthorized,
			wantInBody:     "Email or password is incorrect",
		},
		{
			name:           "missing_email",
			form:           url.Values{"password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusOK,
			wantInBody:     "Email is required",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessionManager{}
			h := handlers.NewAuthHandler(store, sessions, config.Config{Env: "dev"})

			r := newTestRouter()
			r.POST("/users/login", h.Login)

			w := postForm(r, "/users/login", tt.form)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantInBody != "" && !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Fatalf("body does not contain %q, body=%s", tt.wantInBody, w.Body.String())
			}

			cookie := sessionCookie(w)

			if tt.wantCookie {
				if cookie == nil || cookie.Value == "" {
					t.Fatal("expected a session cookie on a successful login")
				}
				if !cookie.HttpOnly {
					t.Error("session cookie must be http only")
				}
				if got := w.Header().Get("Location"); got != "/" {
					t.Fatalf("redirect location = %q, want /", got)
				}
			} else if cookie != nil && cookie.Value != "" {
				t.Fatalf("unexpected session cookie %q", cookie.Value)
			}
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
		wantInBody     string
		wantCookie     bool
	}{
		{
			name:           "success",
			form:           url.Values{"name": {"ada"}, "email": {"ada@example.com"}, "password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusSeeOther,
			wantCookie:     true,
		},
		{
			name: "duplicate_email",
			form: url.Values{"name": {"ada"}, "email": {"ada@example.com"}, "password": {"hunter22hunter22"}},
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, email, passwordHash, name string) (user.User, error) {
					return user.User{}, postgres.ErrEmailAlreadyUsed
				}
			},
			wantStatusCode: http.StatusOK,
			wantInBody:     "Email is already in use",
		},
		{
			name:           "short_password",
			form:           url.Values{"name": {"ada"}, "email": {"ada@example.com"}, "password": {"short"}},
			wantStatusCode: http.StatusOK,
			wantInBody:     "Password must be at least 8 characters",
		},
		{
			name:           "missing_name",
			form:           url.Values{"email": {"ada@example.com"}, "password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusOK,
			wantInBody:     "Name is required",
		},
		{
			name:           "invalid_email",
			form:           url.Values{"name": {"ada"}, "email": {"not-an-email"}, "password": {"hunter22hunter22"}},
			wantStatusCode: http.StatusOK,
			wantInBody:     "Email must be a valid email address",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}
			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			sessions := &fakeSessionManager{}
			h := handlers.NewAuthHandler(store, sessions, config.Config{Env: "dev"})

			r := newTestRouter()
			r.POST("/users/register", h.Register)

			w := postForm(r, "/users/register", tt.form)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantInBody != "" && !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Fatalf("body does not contain %q, body=%s", tt.wantInBody, w.Body.String())
			}

			if tt.wantCookie && sessionCookie(w) == nil {
				t.Fatal("expected a session cookie after registration")
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	sessions := &fakeSessionManager{}
	h := handlers.NewAuthHandler(&fakeUserStore{}, sessions, config.Config{Env: "dev"})

	r := newTestRouter()
	r.GET("/users/logout", h.Logout)

	req := httptest.NewRequest(http.MethodGet, "/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.SessionCookie, Value: "sid-123"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusSeeOther)
	}

	if got := w.Header().Get("Location"); got != "/users/login" {
		t.Fatalf("redirect location = %q, want /users/login", got)
	}

	if sessions.destroyed != "sid-123" {
		t.Fatalf("destroyed session = %q, want sid-123", sessions.destroyed)
	}

	cookie := sessionCookie(w)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected an expired empty session cookie, got %+v", cookie)
	}
}
