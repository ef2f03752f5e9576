package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}

func sampleSessions() []model.SessionAggregate {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return []model.SessionAggregate{
		{SessionID: 1, EndedAt: base, Set: "en", Score: 120, Rank: "タイパー研究生", WPM: 110, Miss: 2},
		{SessionID: 2, EndedAt: base.Add(time.Hour), Set: "en", Score: 210, Rank: "デビュータイパー", WPM: 200, Miss: 0, TimeOver: 1},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleSessions()); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Avg Score: 165.00", "Best Score: 210.00 (デビュータイパー)", "Avg Misses: 1.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected empty summary: %s", buf.String())
	}
}

func TestRenderScoreCurveFitsWidth(t *testing.T) {
	sessions := make([]model.SessionAggregate, 30)
	for i := range sessions {
		sessions[i].Score = float64(i)
	}
	var buf bytes.Buffer
	if err := RenderScoreCurve(&buf, sessions, 1, 10); err != nil {
		t.Fatalf("render curve: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines[1]) != 10 {
		t.Fatalf("expected sparkline of width 10, got %q", lines[1])
	}
	if !strings.Contains(buf.String(), "min 20.0  max 29.0") {
		t.Fatalf("unexpected range: %s", buf.String())
	}
}

func TestRenderHistoryNewestFirst(t *testing.T) {
	sessions := sampleSessions()
	now := sessions[1].EndedAt.Add(2 * time.Hour)
	var buf bytes.Buffer
	if err := RenderHistory(&buf, sessions, 5, now); err != nil {
		t.Fatalf("render history: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[2], "2 hours ago") {
		t.Fatalf("expected newest session first: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "3 hours ago") {
		t.Fatalf("expected older session second: %q", lines[3])
	}
}

func TestRenderLetterTable(t *testing.T) {
	aggs := []model.LetterAggregate{
		{Letter: "a", Seen: 10, Misses: 0},
		{Letter: "q", Seen: 3, Misses: 1},
		{Letter: " ", Seen: 4, Misses: 4},
	}
	var buf bytes.Buffer
	if err := RenderLetterTable(&buf, aggs, 2); err != nil {
		t.Fatalf("render letters: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[2], "<space>") {
		t.Fatalf("expected space first: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "q") {
		t.Fatalf("expected q second: %q", lines[3])
	}
	if strings.Contains(buf.String(), "\na ") {
		t.Fatalf("expected limit to drop a: %s", buf.String())
	}
}
