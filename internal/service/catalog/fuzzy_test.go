package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eac-lab/film-archive/internal/models"
)

func TestStringTransform(t *testing.T) {
	testCases := []struct {
		desc   string
		source string
		expect string
	}{
		{
			desc:   "lowercases",
			source: "La Jetée",
			expect: "la jetee",
		},
		{
			desc:   "strips diacritics",
			source: "Cinémathèque",
			expect: "cinematheque",
		},
		{
			desc:   "ascii unchanged",
			source: "sans soleil",
			expect: "sans soleil",
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.expect, stringTransform(tC.source))
		})
	}
}

func TestFilterRank(t *testing.T) {
	testCases := []struct {
		desc   string
		source []models.Film
		filter models.FilmFilter
		expect []string
	}{
		{
			desc: "closest title first",
			source: []models.Film{
				{ID: 1, Title: "Sans Soleil"},
				{ID: 2, Title: "La Jetée"},
				{ID: 3, Title: "La Jetée II"},
			},
			filter: models.FilmFilter{Title: "la jetee"},
			expect: []string{"La Jetée", "La Jetée II", "Sans Soleil"},
		},
		{
			desc: "diacritics ignored both ways",
			source: []models.Film{
				{ID: 1, Title: "Leon"},
				{ID: 2, Title: "Léon"},
			},
			filter: models.FilmFilter{Title: "léon"},
			expect: []string{"Leon", "Léon"},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			res := filterRank(tC.source, tC.filter)

			titles := make([]string, 0, len(res))
			for _, film := range res {
				titles = append(titles, film.Title)
			}
			assert.Equal(t, tC.expect, titles)
		})
	}
}
