package act

import (
	"context"
	"errors"
	"testing"
	"time"

	"terraverse/internal/adapter/registry/inmemory"
	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

type recordingEvents struct {
	records   []ports.TurnEventRecord
	appendErr error
}

func (r *recordingEvents) Append(_ context.Context, _ string, events []ports.TurnEventRecord) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.records = append(r.records, events...)
	return nil
}

func (r *recordingEvents) ListByGameID(context.Context, string, int) ([]ports.TurnEventRecord, error) {
	return nil, nil
}

type recordingRepo struct {
	snapshots []ports.SnapshotRecord
	saveErr   error
}

func (r *recordingRepo) CreateGame(context.Context, ports.GameRecord) error { return nil }

func (r *recordingRepo) SaveSnapshot(_ context.Context, record ports.SnapshotRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.snapshots = append(r.snapshots, record)
	return nil
}

func (r *recordingRepo) LatestSnapshot(context.Context, string) (ports.SnapshotRecord, error) {
	return ports.SnapshotRecord{}, ports.ErrNotFound
}

type actionCounter struct {
	success map[string]int
	failure map[string]int
}

func newActionCounter() *actionCounter {
	return &actionCounter{success: map[string]int{}, failure: map[string]int{}}
}

func (c *actionCounter) RecordGameCreated() {}

func (c *actionCounter) RecordAction(kind string, success bool) {
	if success {
		c.success[kind]++
		return
	}
	c.failure[kind]++
}

func (c *actionCounter) RecordTurnAdvanced(bool) {}

func intPtr(v int) *int { return &v }

func explorePayload(x, y int) game.Payload {
	return game.Payload{ActionType: "explore", TargetX: intPtr(x), TargetY: intPtr(y)}
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newGame(t *testing.T, reg *inmemory.Registry) string {
	t.Helper()
	return reg.Create(game.Params{Width: 5, Height: 5, Seed: 42})
}

func TestExecuteRejectsBadRequests(t *testing.T) {
	uc := UseCase{Games: inmemory.NewRegistry()}
	cases := []Request{
		{GameID: "", Actions: []game.Payload{explorePayload(1, 2)}},
		{GameID: "g", Actions: nil},
		{GameID: "g", Actions: make([]game.Payload, maxBatchSize+1)},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}

func TestExecuteUnknownGame(t *testing.T) {
	uc := UseCase{Games: inmemory.NewRegistry()}
	req := Request{GameID: "missing", Actions: []game.Payload{explorePayload(1, 2)}}
	if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteSingleAction(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := newGame(t, reg)
	events := &recordingEvents{}
	repo := &recordingRepo{}
	metrics := newActionCounter()
	uc := UseCase{Games: reg, Events: events, Repo: repo, Metrics: metrics, Now: fixedNow}

	resp, err := uc.Execute(context.Background(), Request{GameID: id, Actions: []game.Payload{explorePayload(1, 2)}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(resp.Results) != 1 || !resp.Results[0].Success {
		t.Fatalf("results = %+v", resp.Results)
	}
	if resp.ActionPoints != game.DefaultMaxActionPts-1 {
		t.Errorf("ap = %d, want %d", resp.ActionPoints, game.DefaultMaxActionPts-1)
	}
	if resp.PersistDeferred {
		t.Error("persist deferred on healthy storage")
	}
	if metrics.success["explore"] != 1 {
		t.Errorf("explore success metric = %d", metrics.success["explore"])
	}
	if len(events.records) != 1 || events.records[0].Kind != "explore" {
		t.Errorf("event records = %+v", events.records)
	}
	if len(repo.snapshots) != 1 || repo.snapshots[0].Turn != 1 {
		t.Errorf("snapshots = %+v", repo.snapshots)
	}
}

func TestExecuteBatchStopsAtExhaustedBudget(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := newGame(t, reg)
	uc := UseCase{Games: reg, Now: fixedNow}

	actions := []game.Payload{
		explorePayload(1, 2),
		explorePayload(3, 2),
		explorePayload(2, 1),
		explorePayload(2, 3),
		explorePayload(1, 1),
		explorePayload(0, 2),
	}
	resp, err := uc.Execute(context.Background(), Request{GameID: id, Actions: actions})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(resp.Results) != game.DefaultMaxActionPts {
		t.Fatalf("results = %d, want %d", len(resp.Results), game.DefaultMaxActionPts)
	}
	if resp.ActionPoints != 0 {
		t.Errorf("ap = %d, want 0", resp.ActionPoints)
	}
}

func TestExecuteFailedActionStillRecorded(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := newGame(t, reg)
	events := &recordingEvents{}
	metrics := newActionCounter()
	uc := UseCase{Games: reg, Events: events, Metrics: metrics, Now: fixedNow}

	// (0,0) is not adjacent to the start tile, so the explore fails after
	// the AP spend.
	resp, err := uc.Execute(context.Background(), Request{GameID: id, Actions: []game.Payload{explorePayload(0, 0)}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.Results[0].Success {
		t.Fatal("expected failure result")
	}
	if resp.ActionPoints != game.DefaultMaxActionPts-1 {
		t.Errorf("ap = %d, failed explore must still cost a point", resp.ActionPoints)
	}
	if metrics.failure["explore"] != 1 {
		t.Errorf("explore failure metric = %d", metrics.failure["explore"])
	}
	if len(events.records) != 1 || events.records[0].Payload["success"] != false {
		t.Errorf("event records = %+v", events.records)
	}
}

func TestExecuteStorageOutageIsDeferred(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := newGame(t, reg)
	events := &recordingEvents{appendErr: errors.New("log down")}
	repo := &recordingRepo{saveErr: errors.New("db down")}
	uc := UseCase{Games: reg, Events: events, Repo: repo, Now: fixedNow}

	resp, err := uc.Execute(context.Background(), Request{GameID: id, Actions: []game.Payload{explorePayload(1, 2)}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !resp.PersistDeferred {
		t.Error("expected persist deferred flag")
	}
	if len(resp.Results) != 1 || !resp.Results[0].Success {
		t.Errorf("results = %+v", resp.Results)
	}
}

type countingTx struct {
	calls int
}

func (c *countingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func TestExecutePersistsInsideTransaction(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := newGame(t, reg)
	events := &recordingEvents{}
	repo := &recordingRepo{}
	tx := &countingTx{}
	uc := UseCase{Games: reg, Events: events, Repo: repo, Tx: tx, Now: fixedNow}

	resp, err := uc.Execute(context.Background(), Request{GameID: id, Actions: []game.Payload{explorePayload(1, 2)}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.PersistDeferred {
		t.Error("unexpected persist deferred flag")
	}
	if tx.calls != 1 {
		t.Errorf("tx calls = %d", tx.calls)
	}
	if len(events.records) != 1 || len(repo.snapshots) != 1 {
		t.Errorf("events = %d snapshots = %d", len(events.records), len(repo.snapshots))
	}
}
