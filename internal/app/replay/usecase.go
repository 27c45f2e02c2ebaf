package replay

import (
	"context"
	"errors"
	"strings"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByGameID(ctx, req.GameID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTurnWindow(events, req.TurnFrom, req.TurnTo)
	summary := summarize(events)
	summary.GameID = req.GameID
	return Response{Events: events, Summary: summary}, nil
}

func filterByTurnWindow(events []ports.TurnEventRecord, from, to int) []ports.TurnEventRecord {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]ports.TurnEventRecord, 0, len(events))
	for _, evt := range events {
		if from > 0 && evt.Turn < from {
			continue
		}
		if to > 0 && evt.Turn > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func summarize(events []ports.TurnEventRecord) Summary {
	summary := Summary{ActionCounts: map[string]int{}}
	for _, evt := range events {
		if evt.Turn > summary.LastTurn {
			summary.LastTurn = evt.Turn
		}
		switch evt.Kind {
		case "turn_advanced":
			summary.TurnsAdvanced++
			if flag(evt.Payload["game_over"]) {
				summary.GameOver = true
			}
			if flag(evt.Payload["victory"]) {
				summary.Victory = true
			}
		case "starvation", "event_started", "event_ended":
			// Resolution bookkeeping, not agent actions.
		default:
			if _, ok := game.ParseActionKind(evt.Kind); !ok {
				continue
			}
			summary.ActionCounts[evt.Kind]++
			if flag(evt.Payload["success"]) {
				summary.SuccessfulActions++
			} else {
				summary.FailedActions++
			}
		}
	}
	return summary
}

func flag(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
