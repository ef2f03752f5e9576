// Package wordlist loads and stores entry sets.
package wordlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typist/internal/typing"
)

// Extensions lists the supported entry set formats in lookup order.
var Extensions = []string{".json", ".toml", ".tsv", ".txt"}

type tomlSet struct {
	Entry []struct {
		Word string `toml:"word"`
		Mean string `toml:"mean"`
	} `toml:"entry"`
}

// LoadEntries reads an entry set, picking the format from the file extension.
func LoadEntries(path string) ([]typing.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return typing.ParseEntries(data)
	case ".toml":
		return parseTOML(data)
	case ".tsv", ".txt":
		return parseLines(data)
	default:
		return nil, fmt.Errorf("unsupported entry set format %q", filepath.Ext(path))
	}
}

func parseTOML(data []byte) ([]typing.Entry, error) {
	var set tomlSet
	if _, err := toml.Decode(string(data), &set); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	entries := make([]typing.Entry, 0, len(set.Entry))
	for _, e := range set.Entry {
		entries = append(entries, typing.NewEntry(e.Word, e.Mean))
	}
	if err := typing.ValidateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseLines reads one "word<TAB>meaning" pair per line. The meaning is optional.
func parseLines(data []byte) ([]typing.Entry, error) {
	var entries []typing.Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, mean, _ := strings.Cut(line, "\t")
		entries = append(entries, typing.NewEntry(strings.TrimSpace(word), strings.TrimSpace(mean)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := typing.ValidateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ResolveSetPath returns the first existing file for set in dir.
func ResolveSetPath(dir, set string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, set+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat entry set: %w", err)
		}
	}
	return "", fmt.Errorf("entry set %q not found in %s", set, dir)
}

// ListSets returns the set names found in dir.
func ListSets(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var sets []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !isSupported(ext) {
			continue
		}
		set := strings.TrimSuffix(name, filepath.Ext(name))
		if _, ok := seen[set]; ok {
			continue
		}
		seen[set] = struct{}{}
		sets = append(sets, set)
	}
	return sets, nil
}

func isSupported(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// WriteEntries stores entries as JSON, replacing path atomically.
func WriteEntries(path string, entries []typing.Entry) error {
	if err := typing.ValidateEntries(entries); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create entry set dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "entries-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp entry set: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry set: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close entry set: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write entry set: %w", err)
	}
	return nil
}
