// Package instrumented wraps the postgres repositories so every logical DB
// operation lands in the db metrics, without the repos knowing about
// prometheus.
package instrumented

import (
	"context"

	"github.com/movielog/movielog/internal/domain/movie"
	"github.com/movielog/movielog/internal/domain/user"
	"github.com/movielog/movielog/internal/observability"
	"github.com/movielog/movielog/internal/repo/postgres"
)

type MoviesRepo struct {
	inner *postgres.MoviesRepo
	prom  *observability.Prom
}

func NewMoviesRepo(inner *postgres.MoviesRepo, prom *observability.Prom) *MoviesRepo {
	return &MoviesRepo{
		inner: inner,
		prom:  prom,
	}
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest, postedBy string) (movie.Movie, error) {
	var m movie.Movie

	err := r.prom.ObserveDB("movies.create", func() error {
		var err error
		m, err = r.inner.Create(ctx, req, postedBy)
		return err
	})

	return m, err
}

func (r *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	var m movie.Movie

	err := r.prom.ObserveDB("movies.get", func() error {
		var err error
		m, err = r.inner.GetByID(ctx, id)
		return err
	})

	return m, err
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	var out []movie.Movie

	err := r.prom.ObserveDB("movies.list", func() error {
		var err error
		out, err = r.inner.List(ctx)
		return err
	})

	return out, err
}

func (r *MoviesRepo) UpdateOwned(ctx context.Context, id, ownerID string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	var m movie.Movie

	err := r.prom.ObserveDB("movies.update", func() error {
		var err error
		m, err = r.inner.UpdateOwned(ctx, id, ownerID, req)
		return err
	})

	return m, err
}

func (r *MoviesRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	return r.prom.ObserveDB("movies.delete", func() error {
		return r.inner.DeleteOwned(ctx, id, ownerID)
	})
}

type UsersRepo struct {
	inner *postgres.UsersRepo
	prom  *observability.Prom
}

func NewUsersRepo(inner *postgres.UsersRepo, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		inner: inner,
		prom:  prom,
	}
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.create", func() error {
		var err error
		u, err = r.inner.Create(ctx, email, passwordHash, name)
		return err
	})

	return u, err
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get_by_email", func() error {
		var err error
		u, err = r.inner.GetByEmail(ctx, email)
		return err
	})

	return u, err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get", func() error {
		var err error
		u, err = r.inner.GetByID(ctx, id)
		return err
	})

	return u, err
}
