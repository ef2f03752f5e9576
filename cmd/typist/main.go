// Package main provides the CLI entrypoint for typist.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typist/internal/config"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/logging"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/stats"
	"github.com/verte-zerg/typist/internal/store"
	"github.com/verte-zerg/typist/internal/tui"
	"github.com/verte-zerg/typist/internal/wordlist"
)

const (
	defaultSet         = "en"
	defaultWords       = 20
	defaultWordTimeout = 10
	defaultLayout      = "ascii"
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
	defaultHistory     = 10
	defaultLetterRows  = 10
)

var (
	practiceSet         string
	practiceWords       int
	practiceShuffle     bool
	practiceWordTimeout int
	practiceLayout      string
	practiceFocusWeak   bool
	practiceWeakTop     int
	practiceWeakFactor  float64
	practiceWeakWindow  int

	statsSet         string
	statsSince       string
	statsLast        int
	statsCurveWindow int

	importName  string
	importForce bool
)

var log zerolog.Logger

func main() {
	config.LoadDotEnv()
	log = logging.New(os.Stderr, config.LogLevel())
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typist",
		Short:         "Word and meaning typing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&practiceSet, "set", defaultSet, "entry set name")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "entries per game (0 = whole set)")
	rootCmd.Flags().BoolVar(&practiceShuffle, "shuffle", true, "shuffle entries")
	rootCmd.Flags().IntVar(&practiceWordTimeout, "word-timeout", defaultWordTimeout, "seconds per word before it is skipped (0 disables)")
	rootCmd.Flags().StringVar(&practiceLayout, "layout", defaultLayout, "keyboard layout filter: ascii or any")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak letters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak letters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak letters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak letters")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "set", &practiceSet, fileCfg.Practice.Set)
	applyConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyConfig(cmd, "shuffle", &practiceShuffle, fileCfg.Practice.Shuffle)
	applyConfig(cmd, "word-timeout", &practiceWordTimeout, fileCfg.Practice.WordTimeout)
	applyConfig(cmd, "layout", &practiceLayout, fileCfg.Practice.Layout)
	applyConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	cfg := model.Config{
		Set:         practiceSet,
		Words:       practiceWords,
		Shuffle:     practiceShuffle,
		WordTimeout: time.Duration(practiceWordTimeout) * time.Second,
		Layout:      practiceLayout,
		FocusWeak:   practiceFocusWeak,
		WeakTop:     practiceWeakTop,
		WeakFactor:  practiceWeakFactor,
		WeakWindow:  practiceWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	setsDir := config.DefaultSetsDir()
	setPath, err := wordlist.ResolveSetPath(setsDir, cfg.Set)
	if err != nil {
		return setLoadError(cfg.Set, setsDir, err)
	}
	entries, err := wordlist.LoadEntries(setPath)
	if err != nil {
		return fmt.Errorf("failed to load entry set: %w", err)
	}
	entries = wordlist.FilterEntries(entries, wordlist.FilterForLayout(cfg.Layout))
	if len(entries) == 0 {
		return fmt.Errorf("entry set %q has no words typeable on layout %q", cfg.Set, cfg.Layout)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	weakSet := map[rune]struct{}{}
	if cfg.FocusWeak {
		aggs, err := st.GetWeakLetters(context.Background(), cfg.WeakWindow, cfg.Set)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load weak letters")
		} else {
			weakSet = stats.SelectWeakLetters(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				log.Info().Msg("no stats available for weak-letter focus yet; using normal selection")
			}
		}
	}

	// The TUI owns the terminal, so game logs are dropped unless debugging.
	gameLog := zerolog.Nop()
	if log.GetLevel() <= zerolog.DebugLevel {
		gameLog = log
	}
	m := tui.NewModel(cfg, st, generator.New(), entries, setPath, fileCfg.RankTable(), weakSet, gameLog)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List entry sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	dir := config.DefaultSetsDir()
	sets, err := wordlist.ListSets(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Msg("no entry sets found; add one with: typist import <file>")
			return fmt.Errorf("entry set directory does not exist")
		}
		return fmt.Errorf("failed to read entry set directory: %w", err)
	}
	if len(sets) == 0 {
		log.Warn().Str("dir", dir).Msg("no entry sets found; add one with: typist import <file>")
		return fmt.Errorf("no entry sets found")
	}
	for _, set := range sets {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), set); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an entry set",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "set name (default: file name)")
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing set")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	src := args[0]
	entries, err := wordlist.LoadEntries(src)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}
	name, err := setName(src, importName)
	if err != nil {
		return err
	}
	dir := config.DefaultSetsDir()
	if !importForce {
		if existing, err := wordlist.ResolveSetPath(dir, name); err == nil {
			return fmt.Errorf("entry set already exists: %s (use --force to overwrite)", existing)
		}
	}
	outPath := filepath.Join(dir, name+".json")
	if err := wordlist.WriteEntries(outPath, entries); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.Info().Str("set", name).Int("entries", len(entries)).Str("path", outPath).Msg("imported entry set")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), outPath)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSet, "set", "", "entry set filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseSince(statsSince)
	if err != nil {
		return err
	}
	cfg := model.StatsConfig{
		Set:         statsSet,
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderScoreCurve(out, report.Sessions, cfg.CurveWindow, stats.TerminalWidth(os.Stdout)); err != nil {
		return err
	}
	if err := stats.RenderHistory(out, report.Sessions, defaultHistory, time.Now()); err != nil {
		return err
	}
	return stats.RenderLetterTable(out, report.LetterAggsAll, defaultLetterRows)
}

func parseSince(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return &parsed, nil
}

func setName(src, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		base := filepath.Base(src)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid set name %q", name)
	}
	return name, nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typist configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# set = %q              # Entry set name, resolved in the sets dir
# words = %d              # Entries per game (0 = whole set)
# shuffle = true          # Shuffle entries
# word-timeout = %d       # Seconds per word before it is skipped (0 disables)
# layout = %q        # "ascii" keeps ASCII-typeable words, "any" keeps all
# focus-weak = false      # Bias practice toward weak letters
# weak-top = %d            # Number of weak letters to focus on
# weak-factor = %.1f      # Weight factor for weak letters
# weak-window = %d        # Number of recent sessions to compute weak letters

# [ranks]
# default = "ゲスト"       # Label when no threshold is reached

# [[rank]]                # Replaces the built-in rank table
# score = 550
# label = "神タイパー"
`,
		defaultSet,
		defaultWords,
		defaultWordTimeout,
		defaultLayout,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Set == "" {
		return fmt.Errorf("--set must not be empty")
	}
	if cfg.Words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	if cfg.WordTimeout < 0 {
		return fmt.Errorf("--word-timeout must be >= 0")
	}
	switch strings.ToLower(cfg.Layout) {
	case "ascii", "any":
	default:
		return fmt.Errorf("--layout must be ascii or any")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func setLoadError(set, dir string, err error) error {
	hints := []string{
		fmt.Sprintf("expected entry set %q in: %s", set, dir),
		"Run: typist sets",
		"Import: typist import <file> --name " + set,
	}
	return fmt.Errorf("failed to load entry set: %w\n%s", err, strings.Join(hints, "\n"))
}
