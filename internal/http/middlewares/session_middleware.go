package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/movielog/movielog/internal/domain/user"
)

// SessionCookie is the name of the cookie carrying the opaque sid.
const SessionCookie = "movielog_session"

const loginPath = "/users/login"

// Keep these interfaces small so tests can fake them easily.
type SessionResolver interface {
	UserID(ctx context.Context, sid string) (string, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type SessionMiddleware struct {
	sessions SessionResolver
	users    UserLoader
}

func NewSessionMiddleware(sessions SessionResolver, users UserLoader) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		users:    users,
	}
}

// LoadUser resolves the session cookie into a user on every request.
// Anonymous requests pass through untouched; protected routes decide
// what to do about the absence.
func (m *SessionMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)

		if err != nil || sid == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		userID, err := m.sessions.UserID(ctx, sid)

		if err != nil {
			// stale cookie, carry on anonymous
			c.Next()
			return
		}

		u, err := m.users.GetByID(ctx, userID)

		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxCurrentUser, u)

		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page. It expects
// LoadUser to have run first.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := CurrentUser(c)

		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser fetches the resolved user so handlers don't need to know the
// magic context key.
func CurrentUser(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxCurrentUser)

	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)

	return u, ok
}
