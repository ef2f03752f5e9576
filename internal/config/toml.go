// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typist/internal/typing"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Ranks    RanksConfig    `toml:"ranks"`
	Rank     []RankConfig   `toml:"rank"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Set         *string  `toml:"set"`
	Words       *int     `toml:"words"`
	Shuffle     *bool    `toml:"shuffle"`
	WordTimeout *int     `toml:"word-timeout"`
	Layout      *string  `toml:"layout"`
	FocusWeak   *bool    `toml:"focus-weak"`
	WeakTop     *int     `toml:"weak-top"`
	WeakFactor  *float64 `toml:"weak-factor"`
	WeakWindow  *int     `toml:"weak-window"`
}

// RanksConfig holds rank table options.
type RanksConfig struct {
	Default *string `toml:"default"`
}

// RankConfig is one threshold of a custom rank table.
type RankConfig struct {
	Score float64 `toml:"score"`
	Label string  `toml:"label"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	for i, r := range cfg.Rank {
		if r.Label == "" {
			return FileConfig{}, fmt.Errorf("rank %d has an empty label", i)
		}
	}
	return cfg, nil
}

// RankTable builds the rank table, falling back to the built-in thresholds for
// anything the file does not set.
func (c FileConfig) RankTable() typing.RankTable {
	table := typing.DefaultRankTable()
	if len(c.Rank) > 0 {
		table.Ranks = make([]typing.Rank, 0, len(c.Rank))
		for _, r := range c.Rank {
			table.Ranks = append(table.Ranks, typing.Rank{Score: r.Score, Label: r.Label})
		}
	}
	if c.Ranks.Default != nil {
		table.Default = *c.Ranks.Default
	}
	return table
}
