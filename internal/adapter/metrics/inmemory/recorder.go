package inmemory

import "sync"

type Snapshot struct {
	GamesCreated  uint64            `json:"games_created"`
	GamesFinished uint64            `json:"games_finished"`
	TurnsAdvanced uint64            `json:"turns_advanced"`
	ActionTotal   uint64            `json:"action_total"`
	ActionSuccess uint64            `json:"action_success"`
	ActionFailure uint64            `json:"action_failure"`
	ByActionKind  map[string]uint64 `json:"by_action_kind"`
}

type Recorder struct {
	mu       sync.Mutex
	created  uint64
	finished uint64
	turns    uint64
	success  uint64
	failure  uint64
	byKind   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordGameCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *Recorder) RecordAction(kind string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.success++
	} else {
		r.failure++
	}
	r.byKind[kind]++
}

func (r *Recorder) RecordTurnAdvanced(gameOver bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	if gameOver {
		r.finished++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		GamesCreated:  r.created,
		GamesFinished: r.finished,
		TurnsAdvanced: r.turns,
		ActionSuccess: r.success,
		ActionFailure: r.failure,
		ActionTotal:   r.success + r.failure,
		ByActionKind:  make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byKind {
		out.ByActionKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
