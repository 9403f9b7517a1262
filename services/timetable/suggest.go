package timetable

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type Suggestion struct {
	Class      string  `json:"class"`
	Similarity float64 `json:"similarity"`
}

// minSimilarity drops suggestions that share next to nothing with the query.
const minSimilarity = 0.5

// SuggestClasses ranks the classes of the snapshot by their similarity to
// `query` and returns at most `limit` of them, most similar first.
// Comparison ignores case since class names are typed by hand.
func SuggestClasses(snapshot Snapshot, query string, limit int) []Suggestion {
	target := strings.ToLower(query)

	var result []Suggestion
	for _, class := range snapshot.Classes() {
		similarity := matchr.JaroWinkler(strings.ToLower(class), target, false)
		if similarity < minSimilarity {
			continue
		}
		result = append(result, Suggestion{
			Class:      class,
			Similarity: similarity,
		})
	}

	slices.SortStableFunc(result, func(a, b Suggestion) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		}
		return strings.Compare(a.Class, b.Class)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
