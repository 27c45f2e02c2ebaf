// Package memory backs the repository ports with process-local maps,
// for development and tests where no database is configured.
package memory

import (
	"sync"

	"terraverse/internal/app/ports"
)

type Store struct {
	mu        sync.RWMutex
	games     map[string]ports.GameRecord
	snapshots map[string][]ports.SnapshotRecord
	events    map[string][]ports.TurnEventRecord
	results   []ports.GameResult
}

func NewStore() *Store {
	return &Store{
		games:     make(map[string]ports.GameRecord),
		snapshots: make(map[string][]ports.SnapshotRecord),
		events:    make(map[string][]ports.TurnEventRecord),
	}
}
