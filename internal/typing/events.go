package typing

// Event identifies a processor lifecycle notification.
type Event int

const (
	// EventStart fires when Start begins or restarts a game.
	EventStart Event = iota
	// EventCorrect fires after a letter matched and the cursor moved.
	EventCorrect
	// EventMiss fires when a letter did not match. The cursor stays put.
	EventMiss
	// EventNextWord fires when the next word becomes current.
	EventNextWord
	// EventSkip fires before a skipped word is left.
	EventSkip
	// EventFinish fires once, after the last word was completed or skipped.
	EventFinish

	eventCount
)

var eventNames = [eventCount]string{
	EventStart:    "start",
	EventCorrect:  "correct",
	EventMiss:     "miss",
	EventNextWord: "next-word",
	EventSkip:     "skip",
	EventFinish:   "finish",
}

// Events lists every event in declaration order.
func Events() []Event {
	out := make([]Event, 0, eventCount)
	for e := EventStart; e < eventCount; e++ {
		out = append(out, e)
	}
	return out
}

func (e Event) String() string {
	if e < 0 || e >= eventCount {
		return "unknown"
	}
	return eventNames[e]
}

type subscriber struct {
	id int
	fn func()
}

// dispatcher keeps per-event subscriber lists and calls them synchronously in
// registration order.
type dispatcher struct {
	nextID int
	subs   [eventCount][]subscriber
}

func (d *dispatcher) subscribe(e Event, fn func()) func() {
	if e < 0 || e >= eventCount || fn == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.subs[e] = append(d.subs[e], subscriber{id: id, fn: fn})
	return func() {
		list := d.subs[e]
		for i, s := range list {
			if s.id == id {
				d.subs[e] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (d *dispatcher) emit(e Event) {
	// Copy so a handler unsubscribing mid-dispatch does not skip its neighbours.
	list := append([]subscriber(nil), d.subs[e]...)
	for _, s := range list {
		s.fn()
	}
}
