package memory

import (
	"context"

	"terraverse/internal/app/ports"
)

type GameRepo struct {
	store *Store
}

func NewGameRepo(store *Store) GameRepo {
	return GameRepo{store: store}
}

func (r GameRepo) CreateGame(_ context.Context, record ports.GameRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.games[record.GameID]; ok {
		return ports.ErrConflict
	}
	r.store.games[record.GameID] = record
	return nil
}

func (r GameRepo) SaveSnapshot(_ context.Context, record ports.SnapshotRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snapshots := r.store.snapshots[record.GameID]
	for i, existing := range snapshots {
		if existing.Turn == record.Turn {
			snapshots[i] = record
			return nil
		}
	}
	r.store.snapshots[record.GameID] = append(snapshots, record)
	return nil
}

func (r GameRepo) LatestSnapshot(_ context.Context, gameID string) (ports.SnapshotRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snapshots := r.store.snapshots[gameID]
	if len(snapshots) == 0 {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	latest := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.Turn > latest.Turn {
			latest = s
		}
	}
	return latest, nil
}
