package advance

import (
	"context"
	"errors"
	"strings"
	"time"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid advance request")

type Request struct {
	GameID string
}

type Response struct {
	Turn            int  `json:"turn"`
	ActionPoints    int  `json:"action_points"`
	GameOver        bool `json:"game_over"`
	Victory         bool `json:"victory"`
	PersistDeferred bool `json:"persist_deferred,omitempty"`
}

type UseCase struct {
	Games   ports.GameRegistry
	Repo    ports.GameRepository
	Events  ports.EventRepository
	Tx      ports.TxManager
	Results ports.ResultsIndex
	Metrics ports.ActionMetrics
	Now     func() time.Time
}

// Execute resolves one turn. Advancing a finished game is a no-op and
// reports the final state unchanged.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	var snapshot ports.SnapshotRecord
	var turnEvents []ports.TurnEventRecord
	var finished bool
	var score float64
	err := u.Games.With(req.GameID, func(state *game.State, _ *game.Engine) error {
		wasOver := state.GameOver

		report := state.AdvanceTurn()

		out = Response{
			Turn:         state.Turn,
			ActionPoints: state.ActionPoints,
			GameOver:     state.GameOver,
			Victory:      state.Victory,
		}
		finished = state.GameOver && !wasOver
		if finished {
			score = state.Score().TotalScore
		}
		snapshot = ports.SnapshotRecord{
			GameID:   req.GameID,
			Turn:     state.Turn,
			GameOver: state.GameOver,
			Victory:  state.Victory,
			Snapshot: state.Snapshot(),
			SavedAt:  nowFn(),
		}
		if !wasOver {
			turnEvents = collectTurnEvents(req.GameID, state, report, nowFn())
		}
		if u.Metrics != nil && !wasOver {
			u.Metrics.RecordTurnAdvanced(state.GameOver)
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	// Snapshot and event log land together when a TxManager is wired.
	write := func(ctx context.Context) error {
		if u.Repo != nil {
			if err := u.Repo.SaveSnapshot(ctx, snapshot); err != nil {
				return err
			}
		}
		if u.Events != nil && len(turnEvents) > 0 {
			return u.Events.Append(ctx, req.GameID, turnEvents)
		}
		return nil
	}
	if u.Tx != nil {
		if err := u.Tx.RunInTx(ctx, write); err != nil {
			out.PersistDeferred = true
		}
	} else if err := write(ctx); err != nil {
		out.PersistDeferred = true
	}
	if finished && u.Results != nil {
		result := ports.GameResult{
			GameID:      req.GameID,
			TurnsPlayed: out.Turn,
			Victory:     out.Victory,
			TotalScore:  score,
			FinishedAt:  nowFn(),
		}
		if err := u.Results.RecordResult(ctx, result); err != nil {
			out.PersistDeferred = true
		}
	}
	return out, nil
}

// collectTurnEvents turns one resolution's report into log records.
func collectTurnEvents(gameID string, state *game.State, report game.TurnReport, at time.Time) []ports.TurnEventRecord {
	var out []ports.TurnEventRecord
	record := func(kind string, payload map[string]any) {
		out = append(out, ports.TurnEventRecord{
			GameID:     gameID,
			Turn:       state.Turn,
			Kind:       kind,
			Payload:    payload,
			OccurredAt: at,
		})
	}

	if report.Starved {
		record("starvation", map[string]any{"food": state.Resources.Food})
	}
	for _, e := range report.Expired {
		record("event_ended", map[string]any{"type": string(e.Kind), "description": e.Description})
	}
	if e := report.Triggered; e != nil {
		record("event_started", map[string]any{"type": string(e.Kind), "description": e.Description, "duration": e.Duration})
	}
	record("turn_advanced", map[string]any{
		"game_over":   state.GameOver,
		"victory":     state.Victory,
		"production":  report.Production,
		"consumption": report.Consumption,
	})
	return out
}
