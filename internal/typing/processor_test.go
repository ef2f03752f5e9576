package typing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(words ...string) []Entry {
	out := make([]Entry, 0, len(words))
	for _, w := range words {
		out = append(out, NewEntry(w, "mean of "+w))
	}
	return out
}

type eventLog struct {
	events []Event
}

func recordEvents(p *Processor) *eventLog {
	log := &eventLog{}
	for _, e := range Events() {
		e := e
		p.On(e, func() { log.events = append(log.events, e) })
	}
	return log
}

func (l *eventLog) count(e Event) int {
	n := 0
	for _, got := range l.events {
		if got == e {
			n++
		}
	}
	return n
}

func typeWord(t *testing.T, p *Processor, word string) {
	t.Helper()
	for _, r := range word {
		ok, err := p.Enter(r)
		require.NoError(t, err)
		require.True(t, ok, "expected %q to match", r)
	}
}

func TestNewProcessorValidatesEntries(t *testing.T) {
	_, err := NewProcessor(nil)
	require.ErrorIs(t, err, ErrNoEntries)

	_, err = NewProcessor(entries("go", " "))
	require.ErrorIs(t, err, ErrEmptyWord)
	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 1, entryErr.Index)
}

func TestProcessorScenario(t *testing.T) {
	p, err := NewProcessor(entries("go", "hi"))
	require.NoError(t, err)
	log := recordEvents(p)
	w := NewWatcher(p)

	p.Start()
	typeWord(t, p, "go")
	assert.Equal(t, 1, log.count(EventNextWord))
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, 1, p.WordIndex())

	ok, err := p.Enter('x')
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, log.count(EventMiss))
	assert.Equal(t, 0, p.Cursor())

	typeWord(t, p, "hi")
	assert.Equal(t, 1, log.count(EventFinish))
	assert.True(t, p.IsFinished())
	assert.Equal(t, 4, w.State().CorrectCount())
	assert.Equal(t, 1, w.State().MissCount())

	assert.Equal(t, []Event{
		EventStart,
		EventCorrect, EventCorrect, EventNextWord,
		EventMiss,
		EventCorrect, EventCorrect, EventFinish,
	}, log.events)
}

func TestProcessorFinishFiresOnceAfterAllWords(t *testing.T) {
	words := []string{"a", "bc", "def", "ghij"}
	p, err := NewProcessor(entries(words...))
	require.NoError(t, err)
	log := recordEvents(p)

	p.Start()
	for i, word := range words {
		require.False(t, p.IsFinished(), "finished early at word %d", i)
		typeWord(t, p, word)
	}
	assert.True(t, p.IsFinished())
	assert.Equal(t, 1, log.count(EventFinish))
	assert.Equal(t, len(words)-1, log.count(EventNextWord))
	assert.Equal(t, len(words), p.WordIndex())
	assert.Equal(t, len("ghij"), p.Cursor(), "cursor is not reset on finish")
}

func TestProcessorEnterAdvancesCursorByOne(t *testing.T) {
	p, err := NewProcessor(entries("hello"))
	require.NoError(t, err)
	p.Start()

	for i, r := range "hell" {
		assert.Equal(t, i, p.Cursor())
		ok, err := p.Enter(r)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, i+1, p.Cursor())
	}
	assert.Equal(t, "hell", p.Typed())
	assert.Equal(t, "o", p.Left())
	letter, ok := p.CurrentLetter()
	require.True(t, ok)
	assert.Equal(t, 'o', letter)
}

func TestProcessorSkip(t *testing.T) {
	p, err := NewProcessor(entries("one", "two"))
	require.NoError(t, err)
	log := recordEvents(p)
	p.Start()

	typeWord(t, p, "on")
	require.NoError(t, p.Skip())
	assert.Equal(t, 1, p.WordIndex())
	assert.Equal(t, 0, p.Cursor())

	require.NoError(t, p.Skip())
	assert.True(t, p.IsFinished())
	assert.Equal(t, []Event{
		EventStart, EventCorrect, EventCorrect,
		EventSkip, EventNextWord,
		EventSkip, EventFinish,
	}, log.events)
}

func TestProcessorGuards(t *testing.T) {
	p, err := NewProcessor(entries("a"))
	require.NoError(t, err)
	log := recordEvents(p)

	_, err = p.Enter('a')
	require.ErrorIs(t, err, ErrNotStarted)
	require.ErrorIs(t, p.Skip(), ErrNotStarted)
	assert.Equal(t, StatusNotStarted, p.Status())

	p.Start()
	typeWord(t, p, "a")
	require.Equal(t, StatusFinished, p.Status())

	before := len(log.events)
	ok, err := p.Enter('a')
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrFinished)
	require.ErrorIs(t, p.Skip(), ErrFinished)
	assert.Len(t, log.events, before, "no events after finish")
	assert.Equal(t, "", p.Typed())
	assert.Equal(t, "", p.Left())
	_, ok = p.NowTypingEntry()
	assert.False(t, ok)
}

func TestProcessorAccessors(t *testing.T) {
	p, err := NewProcessor(entries("ねこ", "dog"))
	require.NoError(t, err)
	p.Start()

	now, ok := p.NowTypingEntry()
	require.True(t, ok)
	assert.Equal(t, "ねこ", now.Word())
	next, ok := p.NextTypingEntry()
	require.True(t, ok)
	assert.Equal(t, "dog", next.Word())

	ok, err = p.Enter('ね')
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ね", p.Typed())
	assert.Equal(t, "こ", p.Left())

	typeWord(t, p, "こ")
	assert.Equal(t, "dog", p.CurrentWord())
	_, ok = p.NextTypingEntry()
	assert.False(t, ok)

	words := p.Words()
	words[0] = NewEntry("changed", "")
	assert.Equal(t, "ねこ", p.Words()[0].Word())
}

func TestProcessorRestart(t *testing.T) {
	p, err := NewProcessor(entries("ab", "cd"))
	require.NoError(t, err)
	log := recordEvents(p)
	p.Start()
	typeWord(t, p, "abc")

	p.Start()
	assert.Equal(t, 0, p.WordIndex())
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, StatusInProgress, p.Status())
	assert.Equal(t, 2, log.count(EventStart))
}

func TestProcessorUnsubscribe(t *testing.T) {
	p, err := NewProcessor(entries("ab"))
	require.NoError(t, err)
	calls := 0
	off := p.On(EventCorrect, func() { calls++ })
	p.Start()
	typeWord(t, p, "a")
	off()
	typeWord(t, p, "b")
	assert.Equal(t, 1, calls)
}

func TestEventNames(t *testing.T) {
	names := make([]string, 0, len(Events()))
	for _, e := range Events() {
		names = append(names, e.String())
	}
	assert.Equal(t, []string{"start", "correct", "miss", "next-word", "skip", "finish"}, names)
}
