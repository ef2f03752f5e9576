// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/typist/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			entry_set TEXT NOT NULL,
			entries_path TEXT NOT NULL,
			words INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			miss INTEGER NOT NULL,
			time_over INTEGER NOT NULL,
			max_speed REAL NOT NULL,
			wpm REAL NOT NULL,
			score REAL NOT NULL,
			rank_label TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_letter_stats (
			session_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			seen INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			PRIMARY KEY (session_id, letter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_letter_stats_letter ON session_letter_stats(letter);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished session and its per-letter stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, letters []model.LetterStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (uuid, started_at, ended_at, entry_set, entries_path, words, correct, miss, time_over, max_speed, wpm, score, rank_label, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.UUID,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Set,
		stats.EntriesPath,
		stats.Words,
		stats.Correct,
		stats.Miss,
		stats.TimeOver,
		stats.MaxSpeed,
		stats.WPM,
		stats.Score,
		stats.Rank,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(letters) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_letter_stats (session_id, letter, seen, misses) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ls := range letters {
			if _, err := stmt.ExecContext(ctx, id, ls.Letter, ls.Seen, ls.Misses); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakLetters aggregates letter stats over the most recent sessions.
func (s *Store) GetWeakLetters(ctx context.Context, window int, set string) ([]model.LetterAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR entry_set = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ls.letter, SUM(ls.seen) AS seen, SUM(ls.misses) AS misses
	FROM session_letter_stats ls
	JOIN recent_sessions r ON r.id = ls.session_id
	GROUP BY ls.letter`

	rows, err := s.db.QueryContext(ctx, query, set, set, window)
	if err != nil {
		return nil, err
	}
	return scanLetterAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	builder := sq.Select("id", "ended_at", "entry_set", "correct", "miss", "time_over", "wpm", "score", "rank_label", "duration_ms").
		From("sessions").
		OrderBy("ended_at ASC")
	if cfg.Set != "" {
		builder = builder.Where(sq.Eq{"entry_set": cfg.Set})
	}
	if cfg.Since != nil {
		builder = builder.Where(sq.GtOrEq{"ended_at": cfg.Since.Format(time.RFC3339Nano)})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Set, &agg.Correct, &agg.Miss, &agg.TimeOver, &agg.WPM, &agg.Score, &agg.Rank, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListLetterAggregatesForSessions aggregates per-letter stats across sessions.
func (s *Store) ListLetterAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.LetterAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query, args, err := sq.Select("letter", "SUM(seen) AS seen", "SUM(misses) AS misses").
		From("session_letter_stats").
		Where(sq.Eq{"session_id": sessionIDs}).
		GroupBy("letter").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanLetterAggregates(rows)
}

func scanLetterAggregates(rows *sql.Rows) ([]model.LetterAggregate, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LetterAggregate
	for rows.Next() {
		var agg model.LetterAggregate
		if err := rows.Scan(&agg.Letter, &agg.Seen, &agg.Misses); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
