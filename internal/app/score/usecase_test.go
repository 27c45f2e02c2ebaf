package score

import (
	"context"
	"errors"
	"testing"

	"terraverse/internal/adapter/registry/inmemory"
	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

func TestExecuteRejectsEmptyGameID(t *testing.T) {
	uc := UseCase{Games: inmemory.NewRegistry()}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestExecuteUnknownGame(t *testing.T) {
	uc := UseCase{Games: inmemory.NewRegistry()}
	if _, err := uc.Execute(context.Background(), Request{GameID: "missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteMidGameScore(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := reg.Create(game.Params{Width: 5, Height: 5, Seed: 42})
	uc := UseCase{Games: reg}

	resp, err := uc.Execute(context.Background(), Request{GameID: id})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.GameID != id || resp.TurnsPlayed != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Final || resp.GameOver {
		t.Error("fresh game reported as final")
	}
	// Starting metal is 20, so goal completion is 2 percent of the target.
	if resp.Score.GoalCompletion != 0.02 {
		t.Errorf("goal completion = %v, want 0.02", resp.Score.GoalCompletion)
	}
}

func TestExecuteFinalScore(t *testing.T) {
	reg := inmemory.NewRegistry()
	id := reg.Create(game.Params{Width: 5, Height: 5, Seed: 42, MaxTurns: 2})
	err := reg.With(id, func(state *game.State, _ *game.Engine) error {
		state.AdvanceTurn()
		return nil
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	resp, err := UseCase{Games: reg}.Execute(context.Background(), Request{GameID: id})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !resp.GameOver || !resp.Final {
		t.Fatalf("resp = %+v, want final", resp)
	}
	if resp.TurnsPlayed != 2 {
		t.Errorf("turns played = %d, want 2", resp.TurnsPlayed)
	}
	if resp.Victory {
		t.Error("turn limit end is not a victory")
	}
	if resp.Score.TotalScore < 0 {
		t.Errorf("total score = %v", resp.Score.TotalScore)
	}
}
