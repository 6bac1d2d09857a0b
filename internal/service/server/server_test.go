package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Agurato/reelrank/internal/model"
	"github.com/Agurato/reelrank/internal/service/server"
)

type stubManager struct {
	movies     []model.Movie
	candidates []model.Candidate
	err        error
}

func (sm stubManager) GetRankedMovies(ctx context.Context) ([]model.Movie, error) {
	return sm.movies, sm.err
}

func (sm stubManager) SearchCandidates(title string) ([]model.Candidate, error) {
	return sm.candidates, sm.err
}

func (sm stubManager) ImportCandidate(ctx context.Context, title, releaseDate, description, rating, posterPath string) (*model.Movie, error) {
	if sm.err != nil {
		return nil, sm.err
	}
	return &model.Movie{Title: title}, nil
}

func (sm stubManager) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	for i := range sm.movies {
		if sm.movies[i].ID == id {
			return &sm.movies[i], nil
		}
	}
	return nil, model.ErrMovieNotFound
}

func (sm stubManager) EditMovie(ctx context.Context, id int64, rating, review string) error {
	return sm.err
}

func (sm stubManager) DeleteMovie(ctx context.Context, id int64) error {
	return sm.err
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	// Templates are loaded relative to the repository root
	os.Chdir("../../..")
	os.Exit(m.Run())
}

func serve(t *testing.T, sm stubManager, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := server.NewServer("test-secret", server.NewMovieHandler(sm))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestGETIndex(t *testing.T) {
	sm := stubManager{movies: []model.Movie{
		{ID: 1, Title: "Goodfellas", Year: 1990, Rating: 8.7, Ranking: 1, Review: "blank", ImgURL: "https://image.tmdb.org/t/p/w500/g.jpg"},
		{ID: 2, Title: "Fargo", Year: 1996, Rating: 8.1, Ranking: 2, Review: "blank", ImgURL: "https://image.tmdb.org/t/p/w500/f.jpg"},
	}}

	w := serve(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Goodfellas (1990)")
	assert.Contains(t, body, "8.7 / 10")
	assert.Contains(t, body, "Fargo (1996)")
	assert.Contains(t, body, "/edit/1")
	assert.Contains(t, body, "/delete/2")
}

func TestPOSTAddRendersCandidates(t *testing.T) {
	sm := stubManager{candidates: []model.Candidate{{
		Title:       "Alien",
		ReleaseDate: "1979-05-25",
		Overview:    "In space no one can hear you scream.",
		VoteAverage: 8.5,
		PosterPath:  "/alien.jpg",
	}}}

	w := serve(t, sm, postForm("/add", url.Values{"title": {"alien"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// The query is title-cased in the heading
	assert.Contains(t, body, "Results for \"Alien\"")
	// Year and overview are joined into the candidate meta line
	assert.Contains(t, body, "1979 · In space no one can hear you scream.")
	assert.Contains(t, body, "/add_selected?")
}

func TestPOSTAddCandidateWithoutReleaseDate(t *testing.T) {
	sm := stubManager{candidates: []model.Candidate{{
		Title:    "Alien",
		Overview: "In space no one can hear you scream.",
	}}}

	w := serve(t, sm, postForm("/add", url.Values{"title": {"alien"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	// An empty year leaves no dangling separator
	assert.NotContains(t, w.Body.String(), "· In space")
}

func TestPOSTAddUpstreamError(t *testing.T) {
	sm := stubManager{err: model.ErrMovieNotFound}

	w := serve(t, sm, postForm("/add", url.Values{"title": {"alien"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The movie search is unavailable right now")
}

func TestGETEditNotFound(t *testing.T) {
	w := serve(t, stubManager{}, httptest.NewRequest(http.MethodGet, "/edit/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
