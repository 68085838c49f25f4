// Package scores provides a SQLite-backed leaderboard of finished games.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wricardo/slide2048/game/service"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT    NOT NULL,
	config_id   TEXT    NOT NULL,
	seed        TEXT    NOT NULL,
	score       INTEGER NOT NULL,
	max_tile    INTEGER NOT NULL,
	moves       INTEGER NOT NULL,
	victory     INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	UNIQUE (session_id, seed)
);
CREATE INDEX IF NOT EXISTS scores_config_score ON scores (config_id, score DESC);
`

// Store persists finished games in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite score store and creates its schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts one finished game. Recording the same game twice is a no-op.
func (s *Store) Record(ctx context.Context, entry service.ScoreEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID := strings.ToLower(strings.TrimSpace(entry.SessionID))
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if entry.Score < 0 {
		return fmt.Errorf("score must not be negative")
	}
	finishedAt := entry.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (
		   session_id,
		   config_id,
		   seed,
		   score,
		   max_tile,
		   moves,
		   victory,
		   finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		strings.TrimSpace(entry.ConfigID),
		// uint64 seeds overflow INTEGER
		fmt.Sprintf("%d", entry.Seed),
		entry.Score,
		int64(entry.MaxTile),
		entry.Moves,
		boolToInt(entry.Victory),
		toMillis(finishedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}

// Top returns the highest scores, best first. An empty configID covers every config.
func (s *Store) Top(ctx context.Context, configID string, limit int) ([]service.ScoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return []service.ScoreEntry{}, nil
	}

	query := `SELECT session_id, config_id, seed, score, max_tile, moves, victory, finished_at
	          FROM scores`
	args := []any{}
	if configID = strings.TrimSpace(configID); configID != "" {
		query += ` WHERE config_id = ?`
		args = append(args, configID)
	}
	query += ` ORDER BY score DESC, finished_at ASC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	entries := make([]service.ScoreEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return entries, nil
}

// Best returns the top score for a config. The bool is false when none is recorded.
func (s *Store) Best(ctx context.Context, configID string) (service.ScoreEntry, bool, error) {
	entries, err := s.Top(ctx, configID, 1)
	if err != nil {
		return service.ScoreEntry{}, false, err
	}
	if len(entries) == 0 {
		return service.ScoreEntry{}, false, nil
	}
	return entries[0], true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (service.ScoreEntry, error) {
	var (
		entry      service.ScoreEntry
		seed       string
		maxTile    int64
		victory    int
		finishedAt int64
	)
	if err := row.Scan(&entry.SessionID, &entry.ConfigID, &seed, &entry.Score, &maxTile, &entry.Moves, &victory, &finishedAt); err != nil {
		return service.ScoreEntry{}, fmt.Errorf("scan score: %w", err)
	}
	if _, err := fmt.Sscan(seed, &entry.Seed); err != nil {
		return service.ScoreEntry{}, fmt.Errorf("parse seed %q: %w", seed, err)
	}
	entry.MaxTile = uint32(maxTile)
	entry.Victory = victory != 0
	entry.FinishedAt = fromMillis(finishedAt)
	return entry, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ service.ScoreStore = (*Store)(nil)
