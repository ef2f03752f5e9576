package typing

import (
	"errors"
	"sort"
	"time"
)

const missPenalty = 5

var (
	// ErrNotFinished is returned when a start or end timestamp is missing.
	ErrNotFinished = errors.New("typing state has no start or end time")
	// ErrEmptySpan is returned when start and end time are equal.
	ErrEmptySpan = errors.New("typing span is zero")
)

// Rank maps a minimum score to a label.
type Rank struct {
	Score float64
	Label string
}

// RankTable resolves a score to the label of the highest reached threshold.
type RankTable struct {
	Ranks   []Rank
	Default string
}

// DefaultRankTable returns the built-in rank thresholds.
func DefaultRankTable() RankTable {
	return RankTable{
		Ranks: []Rank{
			{Score: 550, Label: "神タイパー"},
			{Score: 400, Label: "トップタイパー"},
			{Score: 300, Label: "メジャータイパー"},
			{Score: 200, Label: "デビュータイパー"},
			{Score: 100, Label: "タイパー研究生"},
		},
		Default: "ゲスト",
	}
}

// Lookup returns the label of the largest threshold not above score.
func (t RankTable) Lookup(score float64) string {
	ranks := make([]Rank, len(t.Ranks))
	copy(ranks, t.Ranks)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Score < ranks[j].Score })
	label := t.Default
	for _, r := range ranks {
		if r.Score <= score {
			label = r.Label
		}
	}
	return label
}

// Result bundles every derived metric of a finished game.
type Result struct {
	Span     time.Duration
	WPM      float64
	MaxSpeed float64
	Score    float64
	Rank     string
}

// Aggregator derives score and rank from a finished State. It never mutates it.
type Aggregator struct {
	state State
	ranks RankTable
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithRanks replaces the default rank table.
func WithRanks(t RankTable) AggregatorOption {
	return func(a *Aggregator) {
		if len(t.Ranks) > 0 || t.Default != "" {
			a.ranks = t
		}
	}
}

// NewAggregator returns an aggregator over state.
func NewAggregator(state State, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{state: state, ranks: DefaultRankTable()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the aggregated view.
func (a *Aggregator) State() State { return a.state }

// Span returns the time between start and finish.
func (a *Aggregator) Span() (time.Duration, error) {
	start, ok := a.state.StartTime()
	if !ok {
		return 0, ErrNotFinished
	}
	end, ok := a.state.EndTime()
	if !ok {
		return 0, ErrNotFinished
	}
	return end.Sub(start), nil
}

// WPM returns correct keystrokes per minute.
func (a *Aggregator) WPM() (float64, error) {
	span, err := a.Span()
	if err != nil {
		return 0, err
	}
	if span <= 0 {
		return 0, ErrEmptySpan
	}
	minutes := float64(span) / float64(time.Minute)
	return float64(a.state.CorrectCount()) / minutes, nil
}

// Score rewards speed and peak velocity and penalizes misses.
func (a *Aggregator) Score() (float64, error) {
	wpm, err := a.WPM()
	if err != nil {
		return 0, err
	}
	return wpm + a.state.MaxSpeed() - float64(a.state.MissCount()*missPenalty), nil
}

// Rank returns the rank label for the score.
func (a *Aggregator) Rank() (string, error) {
	score, err := a.Score()
	if err != nil {
		return "", err
	}
	return a.ranks.Lookup(score), nil
}

// Result computes every metric at once.
func (a *Aggregator) Result() (Result, error) {
	span, err := a.Span()
	if err != nil {
		return Result{}, err
	}
	score, err := a.Score()
	if err != nil {
		return Result{}, err
	}
	wpm, err := a.WPM()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Span:     span,
		WPM:      wpm,
		MaxSpeed: a.state.MaxSpeed(),
		Score:    score,
		Rank:     a.ranks.Lookup(score),
	}, nil
}
