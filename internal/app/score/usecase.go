package score

import (
	"context"
	"errors"
	"strings"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid score request")

type Request struct {
	GameID string
}

type Response struct {
	GameID      string              `json:"game_id"`
	TurnsPlayed int                 `json:"turns_played"`
	GameOver    bool                `json:"game_over"`
	Victory     bool                `json:"victory"`
	Final       bool                `json:"final"`
	Score       game.ScoreBreakdown `json:"score"`
}

type UseCase struct {
	Games ports.GameRegistry
}

// Execute evaluates the game as it stands. The same breakdown serves
// mid-game progress checks and the final result; Final marks which one
// the caller got.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return Response{}, ErrInvalidRequest
	}
	var out Response
	err := u.Games.With(req.GameID, func(state *game.State, _ *game.Engine) error {
		out = Response{
			GameID:      req.GameID,
			TurnsPlayed: state.Turn,
			GameOver:    state.GameOver,
			Victory:     state.Victory,
			Final:       state.GameOver,
			Score:       state.Score(),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
