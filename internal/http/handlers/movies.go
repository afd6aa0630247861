package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/domain/movie"
	"github.com/movielog/movielog/internal/domain/user"
	"github.com/movielog/movielog/internal/http/middlewares"
)

type MovieStore interface {
	Create(ctx context.Context, req movie.CreateMovieRequest, postedBy string) (movie.Movie, error)
	GetByID(ctx context.Context, id string) (movie.Movie, error)
	List(ctx context.Context) ([]movie.Movie, error)
	UpdateOwned(ctx context.Context, id, ownerID string, req movie.UpdateMovieRequest) (movie.Movie, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type MoviesHandler struct {
	movies MovieStore
	users  UserReader
	genres []string
}

// NewMoviesHandler takes the genre catalog as a value so the fixed list
// stays configuration, not shared mutable state.
func NewMoviesHandler(movies MovieStore, users UserReader, genres []string) *MoviesHandler {
	return &MoviesHandler{
		movies: movies,
		users:  users,
		genres: genres,
	}
}

// ListMovies renders the home listing.
func (h *MoviesHandler) ListMovies(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	movies, err := h.movies.List(cctx)

	if err != nil {
		RespondStoreFailure(ctx, "Could not load movies")
		return
	}

	u, _ := middlewares.CurrentUser(ctx)

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Movies": movies,
		"User":   u,
	})
}

func (h *MoviesHandler) NewMovieForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "add_movie.html", gin.H{
		"Genres": h.genres,
	})
}

func (h *MoviesHandler) CreateMovie(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondForbidden(ctx)
		return
	}

	var req movie.CreateMovieRequest

	fieldErrs, bound := BindForm(ctx, &req)

	if !bound {
		// the form comes back with the error list and the catalog only;
		// previously entered values are not carried over
		ctx.HTML(http.StatusOK, "add_movie.html", gin.H{
			"Errors": fieldErrs,
			"Genres": h.genres,
		})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	_, err := h.movies.Create(cctx, req, u.ID)

	if err != nil {
		RespondStoreFailure(ctx, "Could not save movie")
		return
	}

	RedirectTo(ctx, "/")
}

func (h *MoviesHandler) ShowMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.movies.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Could not find movie")
			return
		}

		RespondStoreFailure(ctx, "Could not load movie")
		return
	}

	// the poster lookup must finish before the view renders
	poster, err := h.users.GetByID(cctx, m.PostedBy)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Could not find user")
			return
		}

		RespondStoreFailure(ctx, "Could not load movie")
		return
	}

	u, _ := middlewares.CurrentUser(ctx)

	ctx.HTML(http.StatusOK, "movie.html", gin.H{
		"Movie":    m,
		"PostedBy": poster.Name,
		"IsOwner":  u.ID != "" && u.ID == m.PostedBy,
	})
}

// DeleteMovie answers the script-driven DELETE. Every rejection returns
// immediately; a Forbidden can never fall through into the delete.
func (h *MoviesHandler) DeleteMovie(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondForbidden(ctx)
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.movies.DeleteOwned(cctx, id, u.ID)

	switch {
	case errors.Is(err, movie.ErrNotFound):
		RespondNotFound(ctx, "Could not find movie")
	case errors.Is(err, movie.ErrForbidden):
		RespondForbidden(ctx)
	case err != nil:
		RespondStoreFailure(ctx, "Could not delete movie")
	default:
		ctx.String(http.StatusOK, "Successfully Deleted")
	}
}

// EditMovieForm is ownership-protected even though it only reads: non-owners
// must not see the edit form.
func (h *MoviesHandler) EditMovieForm(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondForbiddenPage(ctx)
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.movies.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			RespondNotFound(ctx, "Could not find movie")
			return
		}

		RespondStoreFailure(ctx, "Could not load movie")
		return
	}

	if m.PostedBy != u.ID {
		RespondForbiddenPage(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "edit_movie.html", gin.H{
		"Movie":  m,
		"Genres": h.genres,
	})
}

func (h *MoviesHandler) UpdateMovie(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondForbiddenPage(ctx)
		return
	}

	id := ctx.Param("id")

	var req movie.UpdateMovieRequest

	fieldErrs, bound := BindForm(ctx, &req)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if !bound {
		m, err := h.movies.GetByID(cctx, id)

		if err != nil {
			if errors.Is(err, movie.ErrNotFound) {
				RespondNotFound(ctx, "Could not find movie")
				return
			}

			RespondStoreFailure(ctx, "Could not load movie")
			return
		}

		if m.PostedBy != u.ID {
			RespondForbiddenPage(ctx)
			return
		}

		ctx.HTML(http.StatusOK, "edit_movie.html", gin.H{
			"Movie":  m,
			"Genres": h.genres,
			"Errors": fieldErrs,
		})
		return
	}

	// posted_by is re-stamped to the editor; the ownership condition on the
	// update makes that a no-op rather than a reassignment
	_, err := h.movies.UpdateOwned(cctx, id, u.ID, req)

	switch {
	case errors.Is(err, movie.ErrNotFound):
		RespondNotFound(ctx, "Could not find movie")
	case errors.Is(err, movie.ErrForbidden):
		RespondForbiddenPage(ctx)
	case err != nil:
		RespondStoreFailure(ctx, "Could not update movie")
	default:
		RedirectTo(ctx, "/")
	}
}

func (h *MoviesHandler) SearchMovieForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "search_movie.html", gin.H{
		"Genres": h.genres,
	})
}

// SearchMovies loads the whole collection and filters in memory. Fine at
// this data size; pushing the filters into the store is the upgrade path.
func (h *MoviesHandler) SearchMovies(ctx *gin.Context) {
	var filter movie.SearchFilter

	// every criterion is optional, a bind failure just means no criteria
	_ = ctx.ShouldBind(&filter)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	movies, err := h.movies.List(cctx)

	if err != nil {
		RespondStoreFailure(ctx, "Could not search movies")
		return
	}

	ctx.HTML(http.StatusOK, "filtered_movies.html", gin.H{
		"Movies": filter.Apply(movies),
	})
}
