package infrastructure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tmdb "github.com/cyruzin/golang-tmdb"

	"github.com/Agurato/reelrank/internal/model"
)

const tmdbImageURL = "https://image.tmdb.org/t/p/"

type MetadataWrapper struct {
	client *tmdb.Client
}

// NewMetadataWrapper initializes a MetadataWrapper
func NewMetadataWrapper(tmdbAPIKey string) (*MetadataWrapper, error) {
	client, err := tmdb.Init(tmdbAPIKey)
	if err != nil {
		return nil, err
	}
	return &MetadataWrapper{
		client: client,
	}, nil
}

// GetPosterLink builds the full poster URL from a TMDB poster path
func (mw MetadataWrapper) GetPosterLink(key string) string {
	return tmdbImageURL + tmdb.W500 + key
}

// SearchMovies searches TMDB for movies matching the query
func (mw MetadataWrapper) SearchMovies(query string) ([]model.Candidate, error) {
	urlOptions := map[string]string{
		"include_adult": "true",
		"language":      "en",
	}
	tmdbSearchRes, err := mw.client.GetSearchMovies(query, urlOptions)
	if err != nil {
		return nil, fmt.Errorf("movie search for '%s' failed: %w", query, err)
	}

	var candidates []model.Candidate
	for _, res := range tmdbSearchRes.Results {
		candidates = append(candidates, model.Candidate{
			Title:       res.Title,
			ReleaseDate: res.ReleaseDate,
			Overview:    res.Overview,
			VoteAverage: res.VoteAverage,
			Popularity:  res.Popularity,
			PosterPath:  res.PosterPath,
		})
	}

	SortCandidates(query, candidates)
	return candidates, nil
}

// SortCandidates orders search candidates by closeness of their title to the
// query (Levenshtein distance), most popular first among equally close titles
func SortCandidates(query string, candidates []model.Candidate) {
	query = strings.ToLower(query)
	sort.SliceStable(candidates, func(i, j int) bool {
		di := levenshtein.ComputeDistance(query, strings.ToLower(candidates[i].Title))
		dj := levenshtein.ComputeDistance(query, strings.ToLower(candidates[j].Title))
		if di != dj {
			return di < dj
		}
		return candidates[i].Popularity > candidates[j].Popularity
	})
}
