package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/domain/movie"
	"github.com/movielog/movielog/internal/http/handlers"
	"github.com/movielog/movielog/internal/http/middlewares"
	"github.com/movielog/movielog/internal/observability"
	"github.com/movielog/movielog/internal/repo/instrumented"
	"github.com/movielog/movielog/internal/repo/postgres"
	"github.com/movielog/movielog/internal/session"
)

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	prom *observability.Prom,
	reg *prometheus.Registry,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("movielog"))
	r.Use(prom.GinHandleMiddleware())

	// views and static assets

	r.LoadHTMLGlob(cfg.TemplatesGlob)
	r.Static("/static", cfg.StaticDir)

	// health + metrics

	dbPing := func(ctx context.Context) error {
		if pool == nil {
			return nil
		}
		return pool.Ping(ctx)
	}

	redisPing := func(ctx context.Context) error {
		if rdb == nil {
			return nil
		}
		return session.Ping(ctx, rdb)
	}

	health := handlers.NewHealthHandler(dbPing, redisPing)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories and the session store

	moviesRepo := instrumented.NewMoviesRepo(postgres.NewMoviesRepo(pool), prom)
	usersRepo := instrumented.NewUsersRepo(postgres.NewUsersRepo(pool), prom)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	sm := middlewares.NewSessionMiddleware(sessions, usersRepo)
	r.Use(sm.LoadUser())

	// wire up handlers

	moviesHandler := handlers.NewMoviesHandler(moviesRepo, usersRepo, movie.Catalog())
	authHandler := handlers.NewAuthHandler(usersRepo, sessions, cfg)

	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	r.GET("/", moviesHandler.ListMovies)

	users := r.Group("/users")
	{
		users.GET("/register", authHandler.RegisterForm)
		users.POST("/register", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Register)
		users.GET("/login", authHandler.LoginForm)
		users.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
		users.GET("/logout", authHandler.Logout)
	}

	movies := r.Group("/movies")
	{
		movies.GET("/search", moviesHandler.SearchMovieForm)
		movies.POST("/search", moviesHandler.SearchMovies)
		movies.GET("/:id", moviesHandler.ShowMovie)
		// the delete script expects a status code, not a login redirect;
		// the handler rejects anonymous callers with a terminal 403
		movies.DELETE("/:id", moviesHandler.DeleteMovie)

		authed := movies.Group("", sm.RequireAuth())
		{
			authed.GET("/add", moviesHandler.NewMovieForm)
			authed.POST("/add", moviesHandler.CreateMovie)
			authed.GET("/edit/:id", moviesHandler.EditMovieForm)
			authed.POST("/edit/:id", moviesHandler.UpdateMovie)
		}
	}

	return r
}
