package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"urmovies-bot/internal/title"
)

// MatchScore rates how well a normalized query matches a catalog title,
// on a 0-100 scale. It takes the better of two token-sort comparisons:
// against the full normalized title and against the parsed base, so that
// a bare query like "matrix" still lands on "Matrix 1080p Hindi".
func MatchScore(queryNorm, rowTitle string) int {
	q := foldAccents(queryNorm)
	full := tokenSortRatio(q, foldAccents(title.Normalize(rowTitle)))
	base := tokenSortRatio(q, foldAccents(title.Parse(rowTitle).Base))
	if base > full {
		return base
	}
	return full
}

// BestMatch scans rows and returns the highest-scoring one. Ties resolve
// to the lowest row id so results are deterministic. Returns nil for an
// empty slice.
func BestMatch(queryNorm string, rows []Row) (*Row, int) {
	var best *Row
	bestScore := -1
	for i := range rows {
		score := MatchScore(queryNorm, rows[i].Title)
		if score > bestScore || (score == bestScore && best != nil && rows[i].ID < best.ID) {
			best = &rows[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

// tokenSortRatio is the classic token-sort similarity: split both sides
// into words, sort, rejoin, then compute a normalized Levenshtein
// similarity scaled to [0,100].
func tokenSortRatio(a, b string) int {
	sa, sb := sortTokens(a), sortTokens(b)
	if sa == sb {
		return 100
	}
	sim, err := edlib.StringsSimilarity(sa, sb, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return int(sim*100 + 0.5)
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
