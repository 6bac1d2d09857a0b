package model

import "errors"

var (
	// ErrMovieNotFound is returned when a movie ID does not exist in the database
	ErrMovieNotFound = errors.New("movie not found")
	// ErrDuplicateTitle is returned when adding a movie whose title is already in the list
	ErrDuplicateTitle = errors.New("a movie with this title is already in the list")
)

// Movie is a ranked entry in the list
type Movie struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Year        int     `db:"year"`
	Description string  `db:"description"`
	Rating      float64 `db:"rating"`
	// Ranking is derived from Rating on every list view. 0 means not ranked yet
	Ranking int64  `db:"ranking"`
	Review  string `db:"review"`
	ImgURL  string `db:"img_url"`
}

// Candidate is a movie returned by the metadata search, not yet added to the list
type Candidate struct {
	Title       string
	ReleaseDate string
	Overview    string
	VoteAverage float32
	Popularity  float32
	PosterPath  string
}
