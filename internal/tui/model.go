// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/model"
	statsPkg "github.com/verte-zerg/typist/internal/stats"
	"github.com/verte-zerg/typist/internal/typing"
)

const (
	timerInterval = 100 * time.Millisecond
	hardestWords  = 3
)

// SessionStore persists finished games and serves the data the game reads back.
type SessionStore interface {
	InsertSession(ctx context.Context, stats model.SessionStats, letters []model.LetterStats) (int64, error)
	GetWeakLetters(ctx context.Context, window int, set string) ([]model.LetterAggregate, error)
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
}

// Model implements the Bubble Tea typing UI. Each game gets a fresh
// Processor and Watcher pair.
type Model struct {
	config      model.Config
	store       SessionStore
	gen         *generator.Generator
	entries     []typing.Entry
	entriesPath string
	ranks       typing.RankTable
	weakSet     map[rune]struct{}
	log         zerolog.Logger
	now         func() time.Time

	width  int
	height int

	processor   *typing.Processor
	watcher     *typing.Watcher
	timer       timer.Model
	hasTimer    bool
	progress    progress.Model
	lastMiss    bool
	wordChanged bool
	finished    bool
	err         error

	result    typing.Result
	resultErr error
	hardest   []model.WordMisses

	lastScore float64
	lastRank  string
	hasLast   bool
	bestScore float64
	games     int
}

var (
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	meanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle    = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	rankStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, st SessionStore, gen *generator.Generator, entries []typing.Entry, entriesPath string, ranks typing.RankTable, weakSet map[rune]struct{}, log zerolog.Logger) *Model {
	m := &Model{
		config:      cfg,
		store:       st,
		gen:         gen,
		entries:     entries,
		entriesPath: entriesPath,
		ranks:       ranks,
		weakSet:     weakSet,
		log:         log,
		now:         time.Now,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
	}
	m.resetSession()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	case timer.TimeoutMsg:
		if !m.hasTimer || msg.ID != m.timer.ID() || m.processor == nil {
			return m, nil
		}
		if m.processor.Status() == typing.StatusInProgress {
			m.skip()
		}
		return m, m.afterInput()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.processor == nil {
		return m, nil
	}
	if m.finished {
		if msg.Type == tea.KeyEnter {
			m.resetSession()
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyTab:
		m.ensureStarted()
		m.skip()
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		runes := msg.Runes
		// A paste arrives as one message; only its first rune counts as a keystroke.
		if msg.Paste && len(runes) > 1 {
			runes = runes[:1]
		}
		m.handleRunes(runes)
	default:
		return m, nil
	}
	return m, m.afterInput()
}

func (m *Model) ensureStarted() {
	if m.processor.Status() == typing.StatusNotStarted {
		m.processor.Start()
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		m.ensureStarted()
		ok, err := m.processor.Enter(r)
		if errors.Is(err, typing.ErrFinished) {
			return
		}
		m.lastMiss = !ok
	}
}

func (m *Model) skip() {
	if err := m.processor.Skip(); err != nil {
		m.log.Debug().Err(err).Msg("skip ignored")
		return
	}
	m.lastMiss = false
}

// afterInput restarts the word countdown when the word changed.
func (m *Model) afterInput() tea.Cmd {
	if m.finished {
		if m.hasTimer {
			m.hasTimer = false
			return m.timer.Stop()
		}
		return nil
	}
	if !m.wordChanged {
		return nil
	}
	m.wordChanged = false
	m.lastMiss = false
	if m.config.WordTimeout <= 0 {
		return nil
	}
	m.timer = timer.NewWithInterval(m.config.WordTimeout, timerInterval)
	m.hasTimer = true
	return m.timer.Init()
}

func (m *Model) resetSession() {
	m.finished = false
	m.lastMiss = false
	m.wordChanged = false
	m.hasTimer = false
	m.result = typing.Result{}
	m.resultErr = nil
	m.hardest = nil
	m.err = nil

	words := m.pickEntries()
	p, err := typing.NewProcessor(words)
	if err != nil {
		m.processor = nil
		m.watcher = nil
		m.err = fmt.Errorf("failed to start game: %w", err)
		return
	}
	m.processor = p
	// The watcher subscribes first so its state is current when the handlers
	// below run for the same event.
	m.watcher = typing.NewWatcher(p, typing.WithClock(m.now), typing.WithLogger(m.log))
	p.On(typing.EventStart, m.markWordChanged)
	p.On(typing.EventNextWord, m.markWordChanged)
	p.On(typing.EventFinish, m.finishSession)
}

func (m *Model) markWordChanged() {
	m.wordChanged = true
}

func (m *Model) pickEntries() []typing.Entry {
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		return m.gen.PickWeighted(m.entries, m.config.Words, m.weakSet, m.config.WeakFactor)
	}
	return m.gen.Pick(m.entries, m.config.Words, m.config.Shuffle)
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.ListSessions(context.Background(), model.StatsConfig{Set: m.config.Set})
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load session stats")
		return
	}
	for _, s := range sessions {
		m.recordScore(s.Score, s.Rank)
	}
}

func (m *Model) recordScore(score float64, rank string) {
	if m.games == 0 || score > m.bestScore {
		m.bestScore = score
	}
	m.games++
	m.lastScore = score
	m.lastRank = rank
	m.hasLast = true
}

func (m *Model) finishSession() {
	m.finished = true
	state := m.watcher.State()
	words := state.Words()
	missMap := state.MissTypedMap()
	m.hardest = statsPkg.HardestWords(words, missMap, hardestWords)

	res, err := typing.NewAggregator(state, typing.WithRanks(m.ranks)).Result()
	if err != nil {
		m.resultErr = err
		m.log.Warn().Err(err).Msg("failed to score game")
		return
	}
	m.result = res

	startedAt, _ := state.StartTime()
	endedAt, _ := state.EndTime()
	stats := model.SessionStats{
		UUID:        uuid.NewString(),
		StartedAt:   startedAt,
		EndedAt:     endedAt,
		Set:         m.config.Set,
		EntriesPath: m.entriesPath,
		Words:       len(words),
		Correct:     state.CorrectCount(),
		Miss:        state.MissCount(),
		TimeOver:    state.TimeOverCount(),
		MaxSpeed:    res.MaxSpeed,
		WPM:         res.WPM,
		Score:       res.Score,
		Rank:        res.Rank,
		DurationMs:  res.Span.Milliseconds(),
	}
	m.recordScore(res.Score, res.Rank)
	if m.store == nil {
		return
	}
	ctx := context.Background()
	letters := statsPkg.LetterStats(words, missMap)
	if _, err := m.store.InsertSession(ctx, stats, letters); err != nil {
		m.log.Warn().Err(err).Msg("failed to save session")
	}
	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	aggs, err := m.store.GetWeakLetters(context.Background(), m.config.WeakWindow, m.config.Set)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load weak letters")
		return
	}
	m.weakSet = statsPkg.SelectWeakLetters(aggs, m.config.WeakTop)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = missStyle.Render(m.err.Error())
	case m.finished:
		content = m.renderResult()
	default:
		content = m.renderPlay()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) renderPlay() string {
	p := m.processor
	entry, ok := p.NowTypingEntry()
	if !ok {
		return ""
	}
	width := m.contentWidth()
	lines := []string{}
	if entry.Mean() != "" {
		lines = append(lines, wrapStyledRunes(styleText(entry.Mean(), meanStyle), width), "")
	}
	word := []rune(entry.Word())
	lines = append(lines, wrapStyledRunes(buildStyledRunes(word, p.Cursor(), m.lastMiss), width))
	if next, ok := p.NextTypingEntry(); ok {
		lines = append(lines, "", footerStyle.Render("next: "+next.Word()))
	}
	if p.Status() == typing.StatusNotStarted {
		lines = append(lines, "", footerStyle.Render("type the first letter to start · tab: skip word · esc: quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderResult() string {
	if m.resultErr != nil {
		return missStyle.Render(fmt.Sprintf("no score: %v", m.resultErr)) + "\n\n" +
			footerStyle.Render("enter: play again · esc: quit")
	}
	state := m.watcher.State()
	res := m.result
	lines := []string{
		rankStyle.Render(res.Rank),
		"",
		fmt.Sprintf("Score     %8.1f", res.Score),
		fmt.Sprintf("WPM       %8.1f", res.WPM),
		fmt.Sprintf("Max speed %8.1f keys/s", res.MaxSpeed),
		fmt.Sprintf("Time      %8s", res.Span.Round(100*time.Millisecond)),
		fmt.Sprintf("Correct   %8d", state.CorrectCount()),
		fmt.Sprintf("Misses    %8d", state.MissCount()),
		fmt.Sprintf("Skipped   %8d", state.TimeOverCount()),
	}
	if len(m.hardest) > 0 {
		lines = append(lines, "", "Hardest words:")
		for _, w := range m.hardest {
			line := fmt.Sprintf("  %s ×%d", w.Word, w.Misses)
			if w.Mean != "" {
				line += "  " + footerStyle.Render(w.Mean)
			}
			lines = append(lines, line)
		}
	}
	card := cardStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, card, "", footerStyle.Render("enter: play again · esc: quit"))
}

func (m *Model) renderFooter() string {
	if m.processor == nil {
		return ""
	}
	words := len(m.processor.Words())
	done := m.processor.WordIndex()
	if done > words {
		done = words
	}
	segments := []string{
		m.progress.ViewAs(float64(done) / float64(words)),
		fmt.Sprintf("Word %d/%d", done, words),
		fmt.Sprintf("Miss %d", m.watcher.State().MissCount()),
	}
	if m.hasTimer && !m.finished {
		remaining := m.timer.Timeout
		if remaining < 0 {
			remaining = 0
		}
		segments = append(segments, fmt.Sprintf("%.1fs", remaining.Seconds()))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f · %s", m.lastScore, m.lastRank))
		segments = append(segments, fmt.Sprintf("Best %.1f", m.bestScore))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
