package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Agurato/reelrank/internal/model"
)

func TestGetPosterLink(t *testing.T) {
	mw := MetadataWrapper{}
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", mw.GetPosterLink("/poster.jpg"))
}

func TestSortCandidates(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "Alienoid", Popularity: 30},
		{Title: "Aliens", Popularity: 50},
		{Title: "Alien", Popularity: 40},
	}

	SortCandidates("alien", candidates)

	assert.Equal(t, "Alien", candidates[0].Title)
	assert.Equal(t, "Aliens", candidates[1].Title)
	assert.Equal(t, "Alienoid", candidates[2].Title)
}

func TestSortCandidatesPopularityTieBreak(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "Dune", Popularity: 10},
		{Title: "Dune", Popularity: 90},
	}

	SortCandidates("dune", candidates)

	assert.Equal(t, float32(90), candidates[0].Popularity)
	assert.Equal(t, float32(10), candidates[1].Popularity)
}
