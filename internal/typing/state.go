package typing

import "time"

// State is a read-only view of the statistics collected during a game.
type State interface {
	MissCount() int
	CorrectCount() int
	// TimeOverCount counts skipped words.
	TimeOverCount() int
	StartTime() (time.Time, bool)
	EndTime() (time.Time, bool)
	// MaxSpeed is the peak keystrokes-per-second over a five keystroke window.
	MaxSpeed() float64
	// MissTypedMap returns a copy of the per-word, per-letter miss counters.
	MissTypedMap() [][]int
	Words() []Entry
}

// typingState is mutated only by the Watcher that owns it.
type typingState struct {
	missCount     int
	correctCount  int
	timeOverCount int
	startTime     time.Time
	endTime       time.Time
	maxSpeed      float64
	missTypedMap  [][]int
	words         []Entry
}

func newTypingState(words []Entry) *typingState {
	s := &typingState{words: words}
	s.reset()
	return s
}

func (s *typingState) reset() {
	s.missCount = 0
	s.correctCount = 0
	s.timeOverCount = 0
	s.startTime = time.Time{}
	s.endTime = time.Time{}
	s.maxSpeed = 0
	s.missTypedMap = make([][]int, len(s.words))
	for i, e := range s.words {
		s.missTypedMap[i] = make([]int, len([]rune(e.word)))
	}
}

func (s *typingState) recordMiss(wordIndex, cursor int) {
	if wordIndex < 0 || wordIndex >= len(s.missTypedMap) {
		return
	}
	row := s.missTypedMap[wordIndex]
	if cursor < 0 || cursor >= len(row) {
		return
	}
	row[cursor]++
}

func (s *typingState) MissCount() int { return s.missCount }
func (s *typingState) CorrectCount() int { return s.correctCount }
func (s *typingState) TimeOverCount() int { return s.timeOverCount }
func (s *typingState) MaxSpeed() float64 { return s.maxSpeed }

func (s *typingState) StartTime() (time.Time, bool) {
	return s.startTime, !s.startTime.IsZero()
}

func (s *typingState) EndTime() (time.Time, bool) {
	return s.endTime, !s.endTime.IsZero()
}

func (s *typingState) MissTypedMap() [][]int {
	out := make([][]int, len(s.missTypedMap))
	for i, row := range s.missTypedMap {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func (s *typingState) Words() []Entry {
	out := make([]Entry, len(s.words))
	copy(out, s.words)
	return out
}
