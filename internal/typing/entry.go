// Package typing implements the typing game core: a processor walking through
// word/meaning entries, a watcher collecting statistics from its events, and an
// aggregator deriving score and rank from the collected state.
package typing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEntries is returned when an entry list is empty.
	ErrNoEntries = errors.New("entry list is empty")
	// ErrEmptyWord is returned when an entry has no word to type.
	ErrEmptyWord = errors.New("entry word is empty")
)

// EntryError reports which entry failed validation.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Entry is an immutable word/meaning pair.
type Entry struct {
	word string
	mean string
}

// NewEntry returns an entry for the given word and meaning.
func NewEntry(word, mean string) Entry {
	return Entry{word: word, mean: mean}
}

// Word returns the text to type.
func (e Entry) Word() string { return e.word }

// Mean returns the meaning shown alongside the word.
func (e Entry) Mean() string { return e.mean }

type entryJSON struct {
	Word string `json:"word"`
	Mean string `json:"mean"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Word: e.word, Mean: e.mean})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.word = raw.Word
	e.mean = raw.Mean
	return nil
}

// ParseEntries decodes a JSON array of {"word", "mean"} objects and validates it.
func ParseEntries(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ValidateEntries checks that the list is non-empty and every word is typeable.
func ValidateEntries(entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	for i, e := range entries {
		if strings.TrimSpace(e.word) == "" {
			return &EntryError{Index: i, Err: ErrEmptyWord}
		}
	}
	return nil
}
