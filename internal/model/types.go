// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Set         string
	Words       int
	Shuffle     bool
	WordTimeout time.Duration
	Layout      string
	FocusWeak   bool
	WeakTop     int
	WeakFactor  float64
	WeakWindow  int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Set         string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a finished game.
type SessionStats struct {
	UUID        string
	StartedAt   time.Time
	EndedAt     time.Time
	Set         string
	EntriesPath string
	Words       int
	Correct     int
	Miss        int
	TimeOver    int
	MaxSpeed    float64
	WPM         float64
	Score       float64
	Rank        string
	DurationMs  int64
}

// LetterStats stores how often a letter was shown and mistyped in a session.
type LetterStats struct {
	Letter string
	Seen   int
	Misses int
}

// LetterAggregate aggregates letter stats across sessions.
type LetterAggregate struct {
	Letter string
	Seen   int
	Misses int
}

// WordMisses counts misses for one word of a session.
type WordMisses struct {
	Word   string
	Mean   string
	Misses int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Set        string
	Correct    int
	Miss       int
	TimeOver   int
	WPM        float64
	Score      float64
	Rank       string
	DurationMs int64
}
