package memory

import (
	"context"
	"sort"

	"terraverse/internal/app/ports"
)

type ResultsIndex struct {
	store *Store
}

func NewResultsIndex(store *Store) ResultsIndex {
	return ResultsIndex{store: store}
}

func (r ResultsIndex) RecordResult(_ context.Context, result ports.GameResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.results = append(r.store.results, result)
	return nil
}

func (r ResultsIndex) TopResults(_ context.Context, limit int) ([]ports.GameResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.GameResult, len(r.store.results))
	copy(out, r.store.results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
