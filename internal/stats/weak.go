package stats

import (
	"sort"

	"github.com/verte-zerg/typist/internal/model"
)

// SelectWeakLetters selects the lowest-accuracy letters from aggregates.
// Letters that were never missed are not weak.
func SelectWeakLetters(aggs []model.LetterAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	candidates := make([]model.LetterAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Misses > 0 {
			candidates = append(candidates, agg)
		}
	}
	if len(candidates) == 0 {
		return weakSet
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Letter < candidates[j].Letter
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		runes := []rune(candidates[i].Letter)
		if len(runes) > 0 {
			weakSet[runes[0]] = struct{}{}
		}
	}
	return weakSet
}

// accuracy is the share of attempts on a letter that were not misses.
func accuracy(agg model.LetterAggregate) float64 {
	total := agg.Seen + agg.Misses
	if total == 0 {
		return 1.0
	}
	return float64(agg.Seen) / float64(total)
}
