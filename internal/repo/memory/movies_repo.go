package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/movielog/movielog/internal/domain/movie"
)

// MoviesRepo is a map-backed stand-in for the postgres repo. It honors the
// same ownership-conditional mutation contract.
type MoviesRepo struct {
	mu    sync.RWMutex
	items map[string]movie.Movie
}

func NewMoviesRepo() *MoviesRepo {
	return &MoviesRepo{
		items: make(map[string]movie.Movie),
	}
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest, postedBy string) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req, postedBy)

	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

func (r *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	r.mu.RLock()
	m, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	return m, nil
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	r.mu.RLock()
	out := make([]movie.Movie, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}
	r.mu.RUnlock()

	// newest first, matching the postgres ordering
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *MoviesRepo) UpdateOwned(ctx context.Context, id, ownerID string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	if existing.PostedBy != ownerID {
		return movie.Movie{}, movie.ErrForbidden
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Year = req.Year
	existing.Genres = req.Genres
	existing.Rating = req.Rating
	existing.PostedBy = ownerID
	existing.UpdatedAt = time.Now().UTC()

	r.items[id] = existing

	return existing, nil
}

func (r *MoviesRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]

	if !ok {
		return movie.ErrNotFound
	}

	if existing.PostedBy != ownerID {
		return movie.ErrForbidden
	}

	delete(r.items, id)

	return nil
}
