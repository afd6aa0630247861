package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movielog/movielog/internal/domain/movie"
)

type MoviesRepo struct {
	pool *pgxpool.Pool
}

func NewMoviesRepo(pool *pgxpool.Pool) *MoviesRepo {
	return &MoviesRepo{
		pool: pool,
	}
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest, postedBy string) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req, postedBy)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies(id, name, description, year, genres, rating, posted_by, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		m.ID, m.Name, m.Description, m.Year, m.Genres, m.Rating, m.PostedBy, m.CreatedAt, m.UpdatedAt)

	if err != nil {
		return movie.Movie{}, err
	}

	return m, nil
}

func (r *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	var m movie.Movie

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, year, genres, rating, posted_by, created_at, updated_at
		 FROM movies WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Year, &m.Genres, &m.Rating, &m.PostedBy, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

// List returns every movie; search filtering happens in memory on top of it.
func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, year, genres, rating, posted_by, created_at, updated_at
		 FROM movies
		 ORDER BY created_at DESC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]movie.Movie, 0)

	for rows.Next() {
		var m movie.Movie

		err = rows.Scan(&m.ID, &m.Name, &m.Description, &m.Year, &m.Genres, &m.Rating, &m.PostedBy, &m.CreatedAt, &m.UpdatedAt)

		if err != nil {
			return nil, err
		}

		output = append(output, m)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

// UpdateOwned replaces the whole record, but only when ownerID matches
// posted_by. The ownership check rides inside the UPDATE so a concurrent
// owner change can never slip between check and write.
func (r *MoviesRepo) UpdateOwned(ctx context.Context, id, ownerID string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	var m movie.Movie

	err := r.pool.QueryRow(
		ctx,
		`UPDATE movies
			SET name = $3,
					description = $4,
					year = $5,
					genres = $6,
					rating = $7,
					posted_by = $2,
					updated_at = NOW()
		WHERE id = $1 AND posted_by = $2
		RETURNING id, name, description, year, genres, rating, posted_by, created_at, updated_at`,
		id,
		ownerID,
		req.Name,
		req.Description,
		req.Year,
		req.Genres,
		req.Rating,
	).Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Year,
		&m.Genres,
		&m.Rating,
		&m.PostedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, r.resolveMissing(ctx, id)
		}

		return movie.Movie{}, err
	}

	return m, nil
}

// DeleteOwned removes the record only when ownerID matches posted_by.
func (r *MoviesRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM movies WHERE id = $1 AND posted_by = $2`, id, ownerID)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return r.resolveMissing(ctx, id)
	}

	return nil
}

// resolveMissing tells a missing record apart from one owned by someone else
// after a conditional mutation touched zero rows.
func (r *MoviesRepo) resolveMissing(ctx context.Context, id string) error {
	var dummy string

	err := r.pool.QueryRow(ctx, `SELECT id FROM movies WHERE id = $1`, id).Scan(&dummy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.ErrNotFound
		}

		return err
	}

	return movie.ErrForbidden
}
