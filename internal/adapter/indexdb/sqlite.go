// Package indexdb keeps a small SQLite index of finished games, used by
// the leaderboard query. It is a secondary store: losing it never loses
// a game.
package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"terraverse/internal/app/ports"
)

type SQLiteIndex struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS game_results (
			game_id      TEXT PRIMARY KEY,
			turns_played INTEGER NOT NULL,
			victory      INTEGER NOT NULL,
			total_score  REAL NOT NULL,
			finished_at  TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_game_results_score
			ON game_results (total_score DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordResult upserts on game id: re-finishing a replayed game keeps
// the most recent outcome.
func (s *SQLiteIndex) RecordResult(ctx context.Context, result ports.GameResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results (game_id, turns_played, victory, total_score, finished_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			turns_played = excluded.turns_played,
			victory      = excluded.victory,
			total_score  = excluded.total_score,
			finished_at  = excluded.finished_at`,
		result.GameID,
		result.TurnsPlayed,
		boolToInt(result.Victory),
		result.TotalScore,
		result.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteIndex) TopResults(ctx context.Context, limit int) ([]ports.GameResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, turns_played, victory, total_score, finished_at
		FROM game_results
		ORDER BY total_score DESC, finished_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ports.GameResult{}
	for rows.Next() {
		var r ports.GameResult
		var victory int
		var finishedAt string
		if err := rows.Scan(&r.GameID, &r.TurnsPlayed, &victory, &r.TotalScore, &finishedAt); err != nil {
			return nil, err
		}
		r.Victory = victory != 0
		if t, err := time.Parse(time.RFC3339Nano, finishedAt); err == nil {
			r.FinishedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
