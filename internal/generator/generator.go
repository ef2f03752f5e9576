// Package generator selects the entries for a game.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/typist/internal/typing"
)

// Generator produces randomized entry selections.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns count entries. Without shuffle the set order is kept; with it
// entries are sampled without replacement. A count of 0 or above the set size
// selects every entry.
func (g *Generator) Pick(entries []typing.Entry, count int, shuffle bool) []typing.Entry {
	count = clampCount(count, len(entries))
	if !shuffle {
		out := make([]typing.Entry, count)
		copy(out, entries[:count])
		return out
	}
	out := make([]typing.Entry, 0, count)
	for _, i := range g.rnd.Perm(len(entries))[:count] {
		out = append(out, entries[i])
	}
	return out
}

// PickWeighted samples count entries without replacement, biased toward words
// containing weak letters.
func (g *Generator) PickWeighted(entries []typing.Entry, count int, weakSet map[rune]struct{}, factor float64) []typing.Entry {
	count = clampCount(count, len(entries))
	weights := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		weakCount := 0
		for _, r := range e.Word() {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	result := make([]typing.Entry, 0, count)
	for len(result) < count {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := -1
		last := -1
		for j, w := range weights {
			if w == 0 {
				continue
			}
			last = j
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		if idx == -1 {
			idx = last
		}
		result = append(result, entries[idx])
		total -= weights[idx]
		weights[idx] = 0
	}
	return result
}

func clampCount(count, size int) int {
	if count <= 0 || count > size {
		return size
	}
	return count
}
