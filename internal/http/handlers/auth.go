package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/domain/user"
	"github.com/movielog/movielog/internal/http/middlewares"
	"github.com/movielog/movielog/internal/repo/postgres"
	"github.com/movielog/movielog/internal/security"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, email, passwordHash, name string) (user.User, error)
}

type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Destroy(ctx context.Context, sid string) error
	TTL() time.Duration
}

type AuthHandler struct {
	users    UserStore
	sessions SessionManager
	cfg      config.Config
}

func NewAuthHandler(users UserStore, sessions SessionManager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

type RegisterRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) RegisterForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	fieldErrs, bound := BindForm(ctx, &req)

	if !bound {
		ctx.HTML(http.StatusOK, "register.html", gin.H{"Errors": fieldErrs})
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondStoreFailure(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.Create(cctx, req.Email, hash, req.Name)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			ctx.HTML(http.StatusOK, "register.html", gin.H{
				"Errors": []FieldError{{Field: "Email", Message: "Email is already in use"}},
			})
			return
		}

		RespondStoreFailure(ctx, "Could not create user")
		return
	}

	if err := h.startSession(ctx, u.ID); err != nil {
		RespondStoreFailure(ctx, "Could not create session")
		return
	}

	RedirectTo(ctx, "/")
}

func (h *AuthHandler) LoginForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	fieldErrs, bound := BindForm(ctx, &req)

	if !bound {
		ctx.HTML(http.StatusOK, "login.html", gin.H{"Errors": fieldErrs})
		return
	}

	// short timeout for the DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		h.rejectLogin(ctx)
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		h.rejectLogin(ctx)
		return
	}

	if err := h.startSession(ctx, foundUser.ID); err != nil {
		RespondStoreFailure(ctx, "Could not create session")
		return
	}

	RedirectTo(ctx, "/")
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	sid, err := ctx.Cookie(middlewares.SessionCookie)

	if err == nil && sid != "" {
		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		// best effort, the cookie is cleared regardless
		_ = h.sessions.Destroy(cctx, sid)
	}

	h.clearSessionCookie(ctx)
	RedirectTo(ctx, "/users/login")
}

// same answer for unknown email and wrong password
func (h *AuthHandler) rejectLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusUnauthorized, "login.html", gin.H{
		"Errors": []FieldError{{Field: "Credentials", Message: "Email or password is incorrect"}},
	})
}

func (h *AuthHandler) startSession(ctx *gin.Context, userID string) error {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	sid, err := h.sessions.Create(cctx, userID)

	if err != nil {
		return err
	}

	secure := h.cfg.Env == "prod"

	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		middlewares.SessionCookie,
		sid,
		int(h.sessions.TTL().Seconds()),
		"/",
		"",
		secure,
		true, // HttpOnly.
	)

	return nil
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"

	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		middlewares.SessionCookie,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
