package create

import (
	"context"
	"errors"
	"time"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
)

var ErrInvalidRequest = errors.New("invalid create request")

const (
	minMapSide = 3
	maxMapSide = 50
)

type Request struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed,omitempty"`
}

type Response struct {
	GameID string `json:"game_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`
}

type UseCase struct {
	Games   ports.GameRegistry
	Repo    ports.GameRepository
	Metrics ports.ActionMetrics
	Now     func() time.Time

	// Defaults apply when the request leaves width/height at zero.
	DefaultWidth  int
	DefaultHeight int
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Width == 0 {
		req.Width = u.DefaultWidth
	}
	if req.Height == 0 {
		req.Height = u.DefaultHeight
	}
	if req.Width < minMapSide || req.Width > maxMapSide || req.Height < minMapSide || req.Height > maxMapSide {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	if req.Seed == 0 {
		req.Seed = nowFn().UnixNano()
	}

	id := u.Games.Create(game.Params{Width: req.Width, Height: req.Height, Seed: req.Seed})

	if u.Repo != nil {
		record := ports.GameRecord{
			GameID:    id,
			Width:     req.Width,
			Height:    req.Height,
			Seed:      req.Seed,
			CreatedAt: nowFn(),
		}
		if err := u.Repo.CreateGame(ctx, record); err != nil {
			// The live game stays usable; persistence is best effort.
			return Response{GameID: id, Width: req.Width, Height: req.Height, Seed: req.Seed}, nil
		}
		_ = u.Games.With(id, func(state *game.State, _ *game.Engine) error {
			return u.Repo.SaveSnapshot(ctx, ports.SnapshotRecord{
				GameID:   id,
				Turn:     state.Turn,
				Snapshot: state.Snapshot(),
				SavedAt:  nowFn(),
			})
		})
	}
	if u.Metrics != nil {
		u.Metrics.RecordGameCreated()
	}
	return Response{GameID: id, Width: req.Width, Height: req.Height, Seed: req.Seed}, nil
}
