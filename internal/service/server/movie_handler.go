package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/reelrank/internal/model"
)

type MovieManager interface {
	GetRankedMovies(ctx context.Context) ([]model.Movie, error)
	SearchCandidates(title string) ([]model.Candidate, error)
	ImportCandidate(ctx context.Context, title, releaseDate, description, rating, posterPath string) (*model.Movie, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)
	EditMovie(ctx context.Context, id int64, rating, review string) error
	DeleteMovie(ctx context.Context, id int64) error
}

type MovieHandler struct {
	MovieManager
}

func NewMovieHandler(mm MovieManager) *MovieHandler {
	return &MovieHandler{
		MovieManager: mm,
	}
}

// Error404 displays the 404 page
func (mh MovieHandler) Error404(c *gin.Context) {
	RenderHTML(c, http.StatusNotFound, "pages/404.go.html", gin.H{
		"title": "404 - Not Found",
	})
}

// GETIndex displays the movie list, best rating first. Rankings are
// recomputed from the ratings before rendering
func (mh MovieHandler) GETIndex(c *gin.Context) {
	movies, err := mh.MovieManager.GetRankedMovies(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Could not retrieve ranked movies")
		RenderHTML(c, http.StatusInternalServerError, "pages/index.go.html", gin.H{
			"title": "My top movies",
			"error": "An error occured …",
		})
		return
	}
	RenderHTML(c, http.StatusOK, "pages/index.go.html", gin.H{
		"title":  "My top movies",
		"movies": movies,
	})
}

// GETAdd displays the movie search form
func (mh MovieHandler) GETAdd(c *gin.Context) {
	RenderHTML(c, http.StatusOK, "pages/add.go.html", gin.H{
		"title": "Add a movie",
	})
}

// POSTAdd searches the movie database and displays the candidates to pick from
func (mh MovieHandler) POSTAdd(c *gin.Context) {
	inputTitle := strings.Trim(c.PostForm("title"), " ")
	if inputTitle == "" {
		RenderHTML(c, http.StatusOK, "pages/add.go.html", gin.H{
			"title": "Add a movie",
			"error": "Movie title must not be empty",
		})
		return
	}

	candidates, err := mh.MovieManager.SearchCandidates(inputTitle)
	if err != nil {
		log.Error().Err(err).Str("title", inputTitle).Msg("Movie search failed")
		RenderHTML(c, http.StatusOK, "pages/add.go.html", gin.H{
			"title":      "Add a movie",
			"inputTitle": inputTitle,
			"error":      "The movie search is unavailable right now, try again later",
		})
		return
	}
	RenderHTML(c, http.StatusOK, "pages/select.go.html", gin.H{
		"title":      "Select the movie to add",
		"inputTitle": inputTitle,
		"candidates": candidates,
	})
}

// GETAddSelected adds the movie picked on the selection page to the list
func (mh MovieHandler) GETAddSelected(c *gin.Context) {
	_, err := mh.MovieManager.ImportCandidate(
		c.Request.Context(),
		c.Query("title"),
		c.Query("year"),
		c.Query("description"),
		c.Query("rating"),
		c.Query("img_url"))
	if err != nil {
		if errors.Is(err, model.ErrDuplicateTitle) {
			addFlash(c, "This movie is already in your list")
		} else {
			log.Error().Err(err).Str("title", c.Query("title")).Msg("Could not add movie")
			addFlash(c, "This movie could not be added")
		}
		c.Redirect(http.StatusSeeOther, "/add")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GETEdit displays the rating/review form of a movie
func (mh MovieHandler) GETEdit(c *gin.Context) {
	movie, err := mh.getMovieParam(c)
	if err != nil {
		return
	}
	RenderHTML(c, http.StatusOK, "pages/edit.go.html", gin.H{
		"title": "Edit " + movie.Title,
		"movie": movie,
	})
}

// POSTEdit updates the rating and review of a movie, re-rendering the form if
// the input does not validate
func (mh MovieHandler) POSTEdit(c *gin.Context) {
	movie, err := mh.getMovieParam(c)
	if err != nil {
		return
	}

	rating := strings.Trim(c.PostForm("rating"), " ")
	review := strings.Trim(c.PostForm("review"), " ")
	if err := mh.MovieManager.EditMovie(c.Request.Context(), movie.ID, rating, review); err != nil {
		RenderHTML(c, http.StatusOK, "pages/edit.go.html", gin.H{
			"title":  "Edit " + movie.Title,
			"movie":  movie,
			"rating": rating,
			"review": review,
			"error":  err.Error(),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GETDelete deletes a movie from the list
func (mh MovieHandler) GETDelete(c *gin.Context) {
	movie, err := mh.getMovieParam(c)
	if err != nil {
		return
	}
	if err := mh.MovieManager.DeleteMovie(c.Request.Context(), movie.ID); err != nil {
		log.Error().Err(err).Int64("id", movie.ID).Msg("Could not delete movie")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// POSTDelete deletes a movie from the list
func (mh MovieHandler) POSTDelete(c *gin.Context) {
	mh.GETDelete(c)
}

// getMovieParam fetches the movie matching the id route parameter, rendering
// the 404 page if it does not exist
func (mh MovieHandler) getMovieParam(c *gin.Context) (*model.Movie, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		mh.Error404(c)
		return nil, err
	}
	movie, err := mh.MovieManager.GetMovie(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, model.ErrMovieNotFound) {
			log.Error().Err(err).Int64("id", id).Msg("Could not retrieve movie")
		}
		mh.Error404(c)
		return nil, err
	}
	return movie, nil
}
