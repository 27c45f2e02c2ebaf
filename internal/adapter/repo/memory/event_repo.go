package memory

import (
	"context"

	"terraverse/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, gameID string, events []ports.TurnEventRecord) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[gameID] = append(r.store.events[gameID], events...)
	return nil
}

func (r EventRepo) ListByGameID(_ context.Context, gameID string, limit int) ([]ports.TurnEventRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[gameID]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	out := make([]ports.TurnEventRecord, len(events))
	copy(out, events)
	return out, nil
}
