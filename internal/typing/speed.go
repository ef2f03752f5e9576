package typing

import "time"

const speedWindow = 5

// speedTracker keeps the last speedWindow intervals between correct keystrokes
// and the fastest window average seen so far. Zero intervals are not recorded.
type speedTracker struct {
	deltas  [speedWindow]time.Duration
	next    int
	count   int
	sum     time.Duration
	last    time.Time
	hasLast bool
	min     time.Duration
	hasMin  bool
}

func (t *speedTracker) reset() {
	*t = speedTracker{}
}

// observe records a correct keystroke at now. It returns the new max speed in
// keystrokes per second when the fastest window average improved.
func (t *speedTracker) observe(now time.Time) (float64, bool) {
	if !t.hasLast {
		t.last = now
		t.hasLast = true
		return 0, false
	}
	delta := now.Sub(t.last)
	t.last = now
	// Keystrokes sharing a clock reading have no measurable interval.
	if delta <= 0 {
		return 0, false
	}

	if t.count == speedWindow {
		t.sum -= t.deltas[t.next]
	} else {
		t.count++
	}
	t.deltas[t.next] = delta
	t.sum += delta
	t.next = (t.next + 1) % speedWindow

	if t.count < speedWindow {
		return 0, false
	}
	avg := t.sum / speedWindow
	if avg <= 0 || (t.hasMin && avg >= t.min) {
		return 0, false
	}
	t.min = avg
	t.hasMin = true
	ms := float64(avg) / float64(time.Millisecond)
	return 1000 / ms, true
}
