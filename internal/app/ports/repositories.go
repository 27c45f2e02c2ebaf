package ports

import (
	"context"
	"time"

	"terraverse/internal/domain/game"
)

type GameRecord struct {
	GameID    string
	Width     int
	Height    int
	Seed      int64
	CreatedAt time.Time
}

type SnapshotRecord struct {
	GameID   string
	Turn     int
	GameOver bool
	Victory  bool
	Snapshot game.Snapshot
	SavedAt  time.Time
}

type TurnEventRecord struct {
	GameID     string
	Turn       int
	Kind       string
	Payload    map[string]any
	OccurredAt time.Time
}

// GameRepository persists games and their per-turn snapshots. Snapshot
// saves for the same (game, turn) overwrite each other.
type GameRepository interface {
	CreateGame(ctx context.Context, record GameRecord) error
	SaveSnapshot(ctx context.Context, record SnapshotRecord) error
	LatestSnapshot(ctx context.Context, gameID string) (SnapshotRecord, error)
}

// EventRepository is the append-only action/turn log behind the replay
// endpoint.
type EventRepository interface {
	Append(ctx context.Context, gameID string, events []TurnEventRecord) error
	ListByGameID(ctx context.Context, gameID string, limit int) ([]TurnEventRecord, error)
}

type GameResult struct {
	GameID      string
	TurnsPlayed int
	Victory     bool
	TotalScore  float64
	FinishedAt  time.Time
}

// ResultsIndex records finished games for the leaderboard query.
type ResultsIndex interface {
	RecordResult(ctx context.Context, result GameResult) error
	TopResults(ctx context.Context, limit int) ([]GameResult, error)
}

// TxManager scopes repository calls to one transaction. The memory
// implementation runs fn without one.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
