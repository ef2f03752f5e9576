// Package wordlist provides entry filtering helpers.
package wordlist

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/typist/internal/typing"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLayout returns a filter keeping words typeable on the given layout.
func FilterForLayout(layout string) FilterFunc {
	switch strings.ToLower(layout) {
	case "ascii":
		return filterPrintableASCII
	default:
		return filterPrintable
	}
}

// FilterEntries keeps the entries whose word passes keep.
func FilterEntries(entries []typing.Entry, keep FilterFunc) []typing.Entry {
	out := make([]typing.Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e.Word()) {
			out = append(out, e)
		}
	}
	return out
}

func filterPrintableASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < ' ' || ch > '~' {
			return false
		}
	}
	return true
}

func filterPrintable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
