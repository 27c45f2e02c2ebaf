package act

import (
	"context"
	"errors"
	"strings"
	"time"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid act request")

// maxBatchSize caps one request well above anything a full action point
// budget could spend.
const maxBatchSize = 20

type Request struct {
	GameID  string
	Actions []game.Payload
}

type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

type Response struct {
	Results         []ActionResult `json:"results"`
	ActionPoints    int            `json:"action_points_remaining"`
	GameOver        bool           `json:"game_over"`
	PersistDeferred bool           `json:"persist_deferred,omitempty"`
}

type UseCase struct {
	Games   ports.GameRegistry
	Events  ports.EventRepository
	Repo    ports.GameRepository
	Tx      ports.TxManager
	Metrics ports.ActionMetrics
	Now     func() time.Time
}

// persist writes the event log and snapshot, in one transaction when a
// TxManager is wired.
func (u UseCase) persist(ctx context.Context, gameID string, records []ports.TurnEventRecord, snapshot ports.SnapshotRecord) error {
	write := func(ctx context.Context) error {
		if u.Events != nil && len(records) > 0 {
			if err := u.Events.Append(ctx, gameID, records); err != nil {
				return err
			}
		}
		if u.Repo != nil {
			return u.Repo.SaveSnapshot(ctx, snapshot)
		}
		return nil
	}
	if u.Tx != nil {
		return u.Tx.RunInTx(ctx, write)
	}
	return write(ctx)
}

// Execute runs the batch against the live game under its session lock.
// Action semantics live entirely in the engine; this layer adds
// persistence and metrics around it.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.GameID) == "" || len(req.Actions) == 0 {
		return Response{}, ErrInvalidRequest
	}
	if len(req.Actions) > maxBatchSize {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	var snapshot ports.SnapshotRecord
	err := u.Games.With(req.GameID, func(state *game.State, engine *game.Engine) error {
		results := engine.ExecuteBatch(req.Actions)
		out.Results = make([]ActionResult, 0, len(results))
		for i, r := range results {
			out.Results = append(out.Results, ActionResult(r))
			if u.Metrics != nil {
				u.Metrics.RecordAction(req.Actions[i].ActionType, r.Success)
			}
		}
		out.ActionPoints = state.ActionPoints
		out.GameOver = state.GameOver
		snapshot = ports.SnapshotRecord{
			GameID:   req.GameID,
			Turn:     state.Turn,
			GameOver: state.GameOver,
			Victory:  state.Victory,
			Snapshot: state.Snapshot(),
			SavedAt:  nowFn(),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	// Persistence is best effort; a storage outage never loses the
	// in-memory game.
	records := make([]ports.TurnEventRecord, 0, len(out.Results))
	for i, r := range out.Results {
		records = append(records, ports.TurnEventRecord{
			GameID: req.GameID,
			Turn:   snapshot.Turn,
			Kind:   req.Actions[i].ActionType,
			Payload: map[string]any{
				"action":  req.Actions[i],
				"success": r.Success,
				"message": r.Message,
			},
			OccurredAt: nowFn(),
		})
	}
	if err := u.persist(ctx, req.GameID, records, snapshot); err != nil {
		out.PersistDeferred = true
	}
	return out, nil
}
