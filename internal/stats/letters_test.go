package stats

import (
	"testing"

	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/typing"
)

func TestLetterStats(t *testing.T) {
	words := []typing.Entry{typing.NewEntry("aab", ""), typing.NewEntry("ba", "")}
	missMap := [][]int{{1, 0, 2}, {0, 3}}

	got := LetterStats(words, missMap)
	want := []model.LetterStats{
		{Letter: "a", Seen: 3, Misses: 4},
		{Letter: "b", Seen: 2, Misses: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d letters, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestHardestWords(t *testing.T) {
	words := []typing.Entry{
		typing.NewEntry("one", "1"),
		typing.NewEntry("two", "2"),
		typing.NewEntry("three", "3"),
	}
	missMap := [][]int{{1, 0, 0}, {0, 0, 0}, {2, 0, 1, 0, 0}}
	got := HardestWords(words, missMap, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %+v", got)
	}
	if got[0].Word != "three" || got[0].Misses != 3 || got[1].Word != "one" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if top := HardestWords(words, missMap, 1); len(top) != 1 {
		t.Fatalf("expected limit of 1, got %d", len(top))
	}
}

func TestSelectWeakLetters(t *testing.T) {
	aggs := []model.LetterAggregate{
		{Letter: "a", Seen: 10, Misses: 1},
		{Letter: "z", Seen: 2, Misses: 2},
		{Letter: "e", Seen: 20, Misses: 0},
	}
	weak := SelectWeakLetters(aggs, 1)
	if _, ok := weak['z']; !ok || len(weak) != 1 {
		t.Fatalf("expected only z, got %v", weak)
	}
	all := SelectWeakLetters(aggs, 0)
	if len(all) != 2 {
		t.Fatalf("never-missed letters are not weak: %v", all)
	}
}
