package typing

import "errors"

var (
	// ErrNotStarted is returned by Enter and Skip before Start was called.
	ErrNotStarted = errors.New("typing not started")
	// ErrFinished is returned by Enter and Skip once every word was passed.
	ErrFinished = errors.New("typing finished")
)

// Status is the processor lifecycle state.
type Status int

const (
	// StatusNotStarted is the state before the first Start.
	StatusNotStarted Status = iota
	// StatusInProgress accepts Enter and Skip.
	StatusInProgress
	// StatusFinished is reached after the last word.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusInProgress:
		return "in-progress"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Processor walks through a fixed list of entries one letter at a time.
// Cursor positions count runes, not bytes.
type Processor struct {
	words     []Entry
	runes     [][]rune
	wordIndex int
	cursor    int
	status    Status
	events    dispatcher
}

// NewProcessor validates the entries and returns a processor that has not started.
func NewProcessor(words []Entry) (*Processor, error) {
	if err := ValidateEntries(words); err != nil {
		return nil, err
	}
	owned := make([]Entry, len(words))
	copy(owned, words)
	runes := make([][]rune, len(owned))
	for i, e := range owned {
		runes[i] = []rune(e.word)
	}
	return &Processor{words: owned, runes: runes}, nil
}

// On registers fn for the event and returns a function removing it.
func (p *Processor) On(e Event, fn func()) (unsubscribe func()) {
	return p.events.subscribe(e, fn)
}

// Start rewinds to the first word and emits EventStart. It may be called again
// to restart.
func (p *Processor) Start() {
	p.cursor = 0
	p.wordIndex = 0
	p.status = StatusInProgress
	p.events.emit(EventStart)
}

// Enter compares letter with the expected letter and reports whether it matched.
func (p *Processor) Enter(letter rune) (bool, error) {
	if err := p.checkActive(); err != nil {
		return false, err
	}
	if letter != p.runes[p.wordIndex][p.cursor] {
		p.events.emit(EventMiss)
		return false, nil
	}
	p.cursor++
	p.events.emit(EventCorrect)
	if p.cursor >= len(p.runes[p.wordIndex]) {
		p.nextWord()
	}
	return true, nil
}

// Skip gives up on the current word, for a time-out or an explicit give-up.
func (p *Processor) Skip() error {
	if err := p.checkActive(); err != nil {
		return err
	}
	p.events.emit(EventSkip)
	p.nextWord()
	return nil
}

func (p *Processor) checkActive() error {
	switch p.status {
	case StatusNotStarted:
		return ErrNotStarted
	case StatusFinished:
		return ErrFinished
	}
	return nil
}

func (p *Processor) nextWord() {
	p.wordIndex++
	if p.wordIndex >= len(p.words) {
		p.status = StatusFinished
		p.events.emit(EventFinish)
		return
	}
	p.cursor = 0
	p.events.emit(EventNextWord)
}

// Status returns the lifecycle state.
func (p *Processor) Status() Status { return p.status }

// IsFinished reports whether every word was completed or skipped.
func (p *Processor) IsFinished() bool { return p.status == StatusFinished }

// Cursor returns the index of the next expected letter in the current word.
func (p *Processor) Cursor() int { return p.cursor }

// WordIndex returns the index of the current word.
func (p *Processor) WordIndex() int { return p.wordIndex }

// Words returns a copy of the entry list.
func (p *Processor) Words() []Entry {
	out := make([]Entry, len(p.words))
	copy(out, p.words)
	return out
}

// NowTypingEntry returns the current entry, or false once finished.
func (p *Processor) NowTypingEntry() (Entry, bool) {
	if p.wordIndex >= len(p.words) {
		return Entry{}, false
	}
	return p.words[p.wordIndex], true
}

// NextTypingEntry returns the entry after the current one, if any.
func (p *Processor) NextTypingEntry() (Entry, bool) {
	next := p.wordIndex + 1
	if next >= len(p.words) {
		return Entry{}, false
	}
	return p.words[next], true
}

// CurrentWord returns the word being typed, or "" once finished.
func (p *Processor) CurrentWord() string {
	e, ok := p.NowTypingEntry()
	if !ok {
		return ""
	}
	return e.word
}

// CurrentLetter returns the next expected letter.
func (p *Processor) CurrentLetter() (rune, bool) {
	if p.wordIndex >= len(p.runes) || p.cursor >= len(p.runes[p.wordIndex]) {
		return 0, false
	}
	return p.runes[p.wordIndex][p.cursor], true
}

// Typed returns the part of the current word already entered.
func (p *Processor) Typed() string {
	if p.wordIndex >= len(p.runes) {
		return ""
	}
	return string(p.runes[p.wordIndex][:p.cursor])
}

// Left returns the part of the current word still to enter.
func (p *Processor) Left() string {
	if p.wordIndex >= len(p.runes) {
		return ""
	}
	return string(p.runes[p.wordIndex][p.cursor:])
}
