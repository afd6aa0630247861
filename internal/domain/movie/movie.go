package movie

import (
	"errors"
	"time"
)

type Movie struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Year        string    `json:"year"`
	Genres      []string  `json:"genres"`
	Rating      string    `json:"rating"`
	PostedBy    string    `json:"postedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrNotFound = errors.New("movie not found")
	// returned when a mutation targets a movie posted by someone else
	ErrForbidden = errors.New("movie posted by another user")
)

type CreateMovieRequest struct {
	Name        string   `form:"name" binding:"required"`
	Description string   `form:"description" binding:"required"`
	Year        string   `form:"year" binding:"required"`
	Rating      string   `form:"rating" binding:"required"`
	Genres      []string `form:"genres" binding:"required"`
}

// a full replacement payload, there are no partial-field update semantics.
type UpdateMovieRequest struct {
	Name        string   `form:"name" binding:"required"`
	Description string   `form:"description" binding:"required"`
	Year        string   `form:"year" binding:"required"`
	Rating      string   `form:"rating" binding:"required"`
	Genres      []string `form:"genres" binding:"required"`
}

// every field is optional; an empty value means "do not filter on this".
type SearchFilter struct {
	Name   string `form:"name"`
	Year   string `form:"year"`
	Rating string `form:"rating"`
}
