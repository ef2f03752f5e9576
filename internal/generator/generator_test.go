package generator

import (
	"testing"

	"github.com/verte-zerg/typist/internal/typing"
)

func testEntries(words ...string) []typing.Entry {
	out := make([]typing.Entry, 0, len(words))
	for _, w := range words {
		out = append(out, typing.NewEntry(w, ""))
	}
	return out
}

func TestPickKeepsOrderWithoutShuffle(t *testing.T) {
	gen := NewWithSeed(1)
	got := gen.Pick(testEntries("a", "b", "c"), 2, false)
	if len(got) != 2 || got[0].Word() != "a" || got[1].Word() != "b" {
		t.Fatalf("unexpected pick: %+v", got)
	}
}

func TestPickShuffleHasNoDuplicates(t *testing.T) {
	gen := NewWithSeed(42)
	entries := testEntries("a", "b", "c", "d", "e", "f")
	got := gen.Pick(entries, 0, true)
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	seen := map[string]bool{}
	for _, e := range got {
		if seen[e.Word()] {
			t.Fatalf("duplicate entry %q", e.Word())
		}
		seen[e.Word()] = true
	}
}

func TestPickWeightedPrefersWeakLetters(t *testing.T) {
	gen := NewWithSeed(7)
	entries := testEntries("zzz", "aaa", "bbb", "ccc", "ddd", "eee")
	weak := map[rune]struct{}{'z': {}}
	hits := 0
	for i := 0; i < 200; i++ {
		got := gen.PickWeighted(entries, 1, weak, 10)
		if got[0].Word() == "zzz" {
			hits++
		}
	}
	// Weight 31 against 5: well above a uniform 1/6 share.
	if hits < 100 {
		t.Fatalf("expected weak word to dominate, got %d/200", hits)
	}
}

func TestPickWeightedWithoutReplacement(t *testing.T) {
	gen := NewWithSeed(3)
	entries := testEntries("ab", "cd", "ef")
	got := gen.PickWeighted(entries, 10, map[rune]struct{}{'a': {}}, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, e := range got {
		if seen[e.Word()] {
			t.Fatalf("duplicate entry %q", e.Word())
		}
		seen[e.Word()] = true
	}
}
