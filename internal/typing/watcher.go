package typing

import (
	"time"

	"github.com/rs/zerolog"
)

// Watcher collects statistics by subscribing to every processor event.
// It is the only writer of its state.
type Watcher struct {
	processor *Processor
	state     *typingState
	speed     speedTracker
	now       func() time.Time
	log       zerolog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the logger used for max speed updates.
func WithLogger(log zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = log
	}
}

// NewWatcher binds a new statistics collector to p.
func NewWatcher(p *Processor, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		processor: p,
		state:     newTypingState(p.Words()),
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.bind()
	return w
}

// State returns the read-only statistics view.
func (w *Watcher) State() State {
	return w.state
}

func (w *Watcher) bind() {
	p := w.processor
	p.On(EventStart, w.onStart)
	p.On(EventCorrect, w.onCorrect)
	p.On(EventMiss, w.onMiss)
	p.On(EventSkip, func() { w.state.timeOverCount++ })
	p.On(EventFinish, func() { w.state.endTime = w.now() })
}

func (w *Watcher) onStart() {
	// A restart begins a fresh game on the same pair.
	w.state.reset()
	w.speed.reset()
	w.state.startTime = w.now()
}

func (w *Watcher) onCorrect() {
	w.state.correctCount++
	speed, changed := w.speed.observe(w.now())
	if !changed {
		return
	}
	w.state.maxSpeed = speed
	w.log.Debug().Float64("max_speed", speed).Msg("max speed updated")
}

func (w *Watcher) onMiss() {
	w.state.missCount++
	w.state.recordMiss(w.processor.WordIndex(), w.processor.Cursor())
}
