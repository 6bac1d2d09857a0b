package business

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Agurato/reelrank/internal/model"
)

type MovieStorer interface {
	GetMovies(ctx context.Context) ([]model.Movie, error)
	GetMovieFromID(ctx context.Context, id int64) (*model.Movie, error)
	AddMovie(ctx context.Context, movie *model.Movie) error
	SetMovieRatingReview(ctx context.Context, id int64, rating float64, review string) error
	DeleteMovie(ctx context.Context, id int64) error
	ReassignRankings(ctx context.Context) error
}

type MovieMetadata interface {
	SearchMovies(query string) ([]model.Candidate, error)
	GetPosterLink(key string) string
}

type MovieManager struct {
	MovieStorer
	MovieMetadata
}

func NewMovieManager(ms MovieStorer, mm MovieMetadata) *MovieManager {
	return &MovieManager{
		MovieStorer:   ms,
		MovieMetadata: mm,
	}
}

// GetRankedMovies runs the ranking recomputation pass and returns every movie,
// rank 1 first. Rankings are rewritten from the current ratings on every call
func (mm MovieManager) GetRankedMovies(ctx context.Context) ([]model.Movie, error) {
	if err := mm.MovieStorer.ReassignRankings(ctx); err != nil {
		return nil, err
	}
	return mm.MovieStorer.GetMovies(ctx)
}

// SearchCandidates searches the metadata provider for movies matching the title
func (mm MovieManager) SearchCandidates(title string) ([]model.Candidate, error) {
	title = strings.Trim(title, " ")
	if title == "" {
		return nil, errors.New("movie title must not be empty")
	}
	return mm.MovieMetadata.SearchMovies(title)
}

// ImportCandidate builds a movie from the selected search candidate and adds
// it to the list. The movie starts unranked: it gets a rank on the next list
// view. The rating is kept to one decimal, the year is the leading component
// of the release date
func (mm MovieManager) ImportCandidate(ctx context.Context, title, releaseDate, description, rating, posterPath string) (*model.Movie, error) {
	value, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse rating '%s': %w", rating, err)
	}
	year, err := strconv.Atoi(strings.Split(releaseDate, "-")[0])
	if err != nil {
		return nil, fmt.Errorf("cannot parse release date '%s': %w", releaseDate, err)
	}

	movie := &model.Movie{
		Title:       title,
		Year:        year,
		Description: description,
		Rating:      math.Round(value*10) / 10,
		Ranking:     0,
		Review:      "blank",
		ImgURL:      mm.MovieMetadata.GetPosterLink(posterPath),
	}
	if err := mm.MovieStorer.AddMovie(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// GetMovie gets a movie from its ID
func (mm MovieManager) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	return mm.MovieStorer.GetMovieFromID(ctx, id)
}

// EditMovie checks the rating and review follow the form rules and overwrites
// them on the movie, leaving every other field untouched
func (mm MovieManager) EditMovie(ctx context.Context, id int64, rating, review string) error {
	if _, err := mm.MovieStorer.GetMovieFromID(ctx, id); err != nil {
		return err
	}
	value, err := CheckRating(rating)
	if err != nil {
		return err
	}
	if err := CheckReview(review); err != nil {
		return err
	}
	return mm.MovieStorer.SetMovieRatingReview(ctx, id, value, review)
}

// DeleteMovie deletes the movie from the list
func (mm MovieManager) DeleteMovie(ctx context.Context, id int64) error {
	return mm.MovieStorer.DeleteMovie(ctx, id)
}

// CheckRating validates a rating form value: 1 to 3 characters parsing to a
// number between 0 and 10. The returned value is rounded to one decimal
func CheckRating(rating string) (float64, error) {
	rating = strings.Trim(rating, " ")
	if len(rating) < 1 || len(rating) > 3 {
		return 0, errors.New("rating must be between 1 and 3 characters")
	}
	value, err := strconv.ParseFloat(rating, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("rating must be a number, e.g. 7.5")
	}
	if value < 0 || value > 10 {
		return 0, errors.New("rating must be between 0 and 10")
	}
	return math.Round(value*10) / 10, nil
}

// CheckReview validates a review form value: non-empty, 250 characters at most
func CheckReview(review string) error {
	review = strings.Trim(review, " ")
	if review == "" {
		return errors.New("review must not be empty")
	}
	if len(review) > 250 {
		return errors.New("review must be 250 characters at most")
	}
	return nil
}
