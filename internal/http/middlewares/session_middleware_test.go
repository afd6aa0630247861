package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/movielog/movielog/internal/domain/user"
	"github.com/movielog/movielog/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	userIDFn func(ctx context.Context, sid string) (string, error)
}

func (f *fakeResolver) UserID(ctx context.Context, sid string) (string, error) {
	if f.userIDFn != nil {
		return f.userIDFn(ctx, sid)
	}

	return "", errors.New("no session")
}

type fakeLoader struct {
	getFn func(ctx context.Context, id string) (user.User, error)
}

func (f *fakeLoader) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return user.User{}, user.ErrNotFound
}

func serveWithSession(sm *middlewares.SessionMiddleware, protected bool, cookie *http.Cookie) (*httptest.ResponseRecorder, *user.User) {
	var seen *user.User

	record := func(c *gin.Context) {
		if u, ok := middlewares.CurrentUser(c); ok {
			seen = &u
		}
		c.String(http.StatusOK, "ok")
	}

	r := gin.New()
	if protected {
		r.GET("/page", sm.LoadUser(), sm.RequireAuth(), record)
	} else {
		r.GET("/page", sm.LoadUser(), record)
	}

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w, seen
}

func TestLoadUser(t *testing.T) {
	known := user.User{ID: "user-1", Email: "ada@example.com", Name: "ada"}

	resolver := &fakeResolver{
		userIDFn: func(ctx context.Context, sid string) (string, error) {
			if sid == "good-sid" {
				return known.ID, nil
			}
			return "", errors.New("unknown session")
		},
	}

	loader := &fakeLoader{
		getFn: func(ctx context.Context, id string) (user.User, error) {
			if id == known.ID {
				return known, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}

	sm := middlewares.NewSessionMiddleware(resolver, loader)

	t.Run("no_cookie_is_anonymous", func(t *testing.T) {
		w, seen := serveWithSession(sm, false, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
		}
		if seen != nil {
			t.Fatalf("expected no current user, got %+v", seen)
		}
	})

	t.Run("stale_cookie_is_anonymous", func(t *testing.T) {
		cookie := &http.Cookie{Name: middlewares.SessionCookie, Value: "stale-sid"}

		w, seen := serveWithSession(sm, false, cookie)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
		}
		if seen != nil {
			t.Fatalf("expected no current user, got %+v", seen)
		}
	})

	t.Run("valid_cookie_resolves_user", func(t *testing.T) {
		cookie := &http.Cookie{Name: middlewares.SessionCookie, Value: "good-sid"}

		w, seen := serveWithSession(sm, false, cookie)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
		}
		if seen == nil || seen.ID != known.ID {
			t.Fatalf("current user = %+v, want %+v", seen, known)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	known := user.User{ID: "user-1", Name: "ada"}

	resolver := &fakeResolver{
		userIDFn: func(ctx context.Context, sid string) (string, error) {
			return known.ID, nil
		},
	}
	loader := &fakeLoader{
		getFn: func(ctx context.Context, id string) (user.User, error) {
			return known, nil
		},
	}

	sm := middlewares.NewSessionMiddleware(resolver, loader)

	t.Run("anonymous_is_redirected_to_login", func(t *testing.T) {
		w, _ := serveWithSession(sm, true, nil)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusSeeOther)
		}
		if got := w.Header().Get("Location"); got != "/users/login" {
			t.Fatalf("redirect location = %q, want /users/login", got)
		}
	})

	t.Run("authenticated_passes_through", func(t *testing.T) {
		cookie := &http.Cookie{Name: middlewares.SessionCookie, Value: "good-sid"}

		w, seen := serveWithSession(sm, true, cookie)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}
		if seen == nil || seen.ID != known.ID {
			t.Fatalf("current user = %+v, want %+v", seen, known)
		}
	})
}
