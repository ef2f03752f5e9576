// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/verte-zerg/typist/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// TerminalWidth returns the width of the terminal behind f, or a fallback.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalScore, totalWPM float64
	totalMiss := 0
	best := sessions[0]
	for _, s := range sessions {
		totalScore += s.Score
		totalWPM += s.WPM
		totalMiss += s.Miss
		if s.Score > best.Score {
			best = s
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg Score: %.2f", totalScore/count),
		fmt.Sprintf("Best Score: %.2f (%s)", best.Score, best.Rank),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Avg Misses: %.2f", float64(totalMiss)/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderScoreCurve prints a moving-average score sparkline fitted to width.
func RenderScoreCurve(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	scores := make([]float64, len(sessions))
	for i, s := range sessions {
		scores[i] = s.Score
	}
	scores = MovingAverage(scores, window)
	if width > 0 && len(scores) > width {
		scores = scores[len(scores)-width:]
	}
	minVal, maxVal := minMax(scores)
	lines := []string{
		fmt.Sprintf("Score Curve (window %d)", window),
		Sparkline(scores),
		fmt.Sprintf("min %.1f  max %.1f", minVal, maxVal),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints the most recent sessions, newest first.
func RenderHistory(w io.Writer, sessions []model.SessionAggregate, limit int, now time.Time) error {
	if len(sessions) == 0 {
		return nil
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[len(sessions)-limit:]
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	headers := []string{"When", "Set", "Score", "Rank", "WPM", "Miss", "Skip"}
	rows := make([][]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		rows = append(rows, []string{
			humanize.RelTime(s.EndedAt, now, "ago", "from now"),
			s.Set,
			fmt.Sprintf("%.1f", s.Score),
			s.Rank,
			fmt.Sprintf("%.1f", s.WPM),
			fmt.Sprintf("%d", s.Miss),
			fmt.Sprintf("%d", s.TimeOver),
		})
	}
	rightAlign := map[int]bool{2: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderLetterTable prints per-letter aggregates, least accurate first.
func RenderLetterTable(w io.Writer, aggs []model.LetterAggregate, limit int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No letter stats found.")
		return err
	}
	sorted := make([]model.LetterAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := accuracy(sorted[i]), accuracy(sorted[j])
		if ai == aj {
			return sorted[i].Letter < sorted[j].Letter
		}
		return ai < aj
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	if _, err := fmt.Fprintln(w, "Most Missed Letters"); err != nil {
		return err
	}
	headers := []string{"Letter", "Accuracy", "Seen", "Misses"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		label := agg.Letter
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%d", agg.Seen),
			fmt.Sprintf("%d", agg.Misses),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
