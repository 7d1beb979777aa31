package catalog

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/eac-lab/film-archive/internal/models"
)

/*
 * Folding transformer mostly taken from github.com/lithammer/fuzzysearch/fuzzy.
 * It is not public for external use, so it is copied and customised here.
 */

var (
	normalizeTransformer transform.Transformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	transformer                                = transform.Chain(normalizeTransformer, unicodeFoldTransformer{})
)

type filmRank struct {
	film models.Film
	rank int
}

func rankCmp(fr1, fr2 filmRank) int {
	return fr1.rank - fr2.rank
}

// filterRank orders films by the Levenshtein distance between their
// folded titles and the folded query, ascending.
func filterRank(films []models.Film, filter models.FilmFilter) []models.Film {
	query := stringTransform(filter.Title)

	ranked := make([]filmRank, 0, len(films))
	for _, film := range films {
		ranked = append(ranked, filmRank{
			film: film,
			rank: fuzzy.LevenshteinDistance(stringTransform(film.Title), query),
		})
	}

	slices.SortStableFunc(ranked, rankCmp)

	out := make([]models.Film, 0, len(ranked))
	for _, fr := range ranked {
		out = append(out, fr.film)
	}

	return out
}

func stringTransform(s string) (transformed string) {
	var err error
	transformed, _, err = transform.String(transformer, s)
	if err != nil {
		transformed = s
	}

	return
}

type unicodeFoldTransformer struct{ transform.NopResetter }

func (unicodeFoldTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	// Converting src to a string allocates.
	// In theory, it need not; see https://go.dev/issue/27148.
	for _, r := range string(src) {
		if r == utf8.RuneError {
			// Ranging over a string advances a single byte on an
			// invalid UTF-8 sequence.
			nSrc++
		} else {
			nSrc += utf8.RuneLen(r)
		}
		r = unicode.ToLower(r)
		x := utf8.RuneLen(r)
		if x > len(dst[nDst:]) {
			err = transform.ErrShortDst
			break
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}
	return nDst, nSrc, err
}
