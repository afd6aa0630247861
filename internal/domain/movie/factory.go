package movie

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateMovieRequest, postedBy string) Movie {
	now := time.Now().UTC()

	return Movie{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
		Genres:      req.Genres,
		Rating:      req.Rating,
		PostedBy:    postedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
