package stats

import (
	"sort"

	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/typing"
)

// LetterStats folds a game's miss map into per-letter counts. Every letter of
// every word counts as seen once.
func LetterStats(words []typing.Entry, missMap [][]int) []model.LetterStats {
	index := map[rune]int{}
	var out []model.LetterStats
	for i, e := range words {
		var row []int
		if i < len(missMap) {
			row = missMap[i]
		}
		for pos, r := range []rune(e.Word()) {
			idx, ok := index[r]
			if !ok {
				idx = len(out)
				index[r] = idx
				out = append(out, model.LetterStats{Letter: string(r)})
			}
			out[idx].Seen++
			if pos < len(row) {
				out[idx].Misses += row[pos]
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}

// HardestWords returns up to n words with at least one miss, most missed first.
func HardestWords(words []typing.Entry, missMap [][]int, n int) []model.WordMisses {
	var out []model.WordMisses
	for i, e := range words {
		if i >= len(missMap) {
			break
		}
		total := 0
		for _, c := range missMap[i] {
			total += c
		}
		if total == 0 {
			continue
		}
		out = append(out, model.WordMisses{Word: e.Word(), Mean: e.Mean(), Misses: total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Misses > out[j].Misses })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
