package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"

	"github.com/Agurato/reelrank/internal/model"
)

const moviesSchema = `
CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	year INTEGER NOT NULL,
	description TEXT NOT NULL,
	rating REAL NOT NULL,
	ranking INTEGER NOT NULL DEFAULT 0,
	review TEXT NOT NULL,
	img_url TEXT NOT NULL
)`

type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens (and creates if needed) the movie database at the given path
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database '%s': %w", path, err)
	}
	if _, err := db.Exec(moviesSchema); err != nil {
		return nil, fmt.Errorf("could not create movies table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the SQLite connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMovies returns every movie, best rating first, ties by insertion order
func (s *SQLite) GetMovies(ctx context.Context) (movies []model.Movie, err error) {
	err = s.db.SelectContext(ctx, &movies, `SELECT * FROM movies ORDER BY rating DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve movies: %w", err)
	}
	return movies, nil
}

// GetMovieFromID gets a movie from its ID
func (s *SQLite) GetMovieFromID(ctx context.Context, id int64) (*model.Movie, error) {
	var movie model.Movie
	err := s.db.GetContext(ctx, &movie, `SELECT * FROM movies WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve movie %d: %w", id, err)
	}
	return &movie, nil
}

// AddMovie inserts a movie and fills in its assigned ID
func (s *SQLite) AddMovie(ctx context.Context, movie *model.Movie) error {
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO movies (title, year, description, rating, ranking, review, img_url)
		 VALUES (:title, :year, :description, :rating, :ranking, :review, :img_url)`,
		movie)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.ErrDuplicateTitle
		}
		return fmt.Errorf("could not add movie '%s': %w", movie.Title, err)
	}
	movie.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("could not get ID of movie '%s': %w", movie.Title, err)
	}
	return nil
}

// SetMovieRatingReview overwrites the rating and review of a movie, leaving every other column untouched
func (s *SQLite) SetMovieRatingReview(ctx context.Context, id int64, rating float64, review string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE movies SET rating = ?, review = ? WHERE id = ?`, rating, review, id)
	if err != nil {
		return fmt.Errorf("could not update movie %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

// DeleteMovie deletes the movie from the database
func (s *SQLite) DeleteMovie(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete movie %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

// ReassignRankings recomputes the ranking of every movie from the current
// ratings, in a single transaction: rank 1 goes to the highest rating, equal
// ratings keep their insertion order.
func (s *SQLite) ReassignRankings(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin ranking transaction: %w", err)
	}
	defer tx.Rollback()

	var movies []model.Movie
	if err := tx.SelectContext(ctx, &movies, `SELECT * FROM movies ORDER BY rating DESC, id ASC`); err != nil {
		return fmt.Errorf("could not retrieve movies: %w", err)
	}
	for i, movie := range movies {
		if _, err := tx.ExecContext(ctx, `UPDATE movies SET ranking = ? WHERE id = ?`, i+1, movie.ID); err != nil {
			return fmt.Errorf("could not set ranking of movie %d: %w", movie.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit rankings: %w", err)
	}
	return nil
}
