package observe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"
	"terraverse/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const (
	frontierPositionLimit = 10
	recentEventLimit      = 5
)

type Request struct {
	GameID string
	Simple bool
}

type Response struct {
	// Exactly one of the two projections is set, matching Request.Simple.
	Full   *Observation       `json:"full,omitempty"`
	Simple *SimpleObservation `json:"simple,omitempty"`
}

type UseCase struct {
	Games ports.GameRegistry
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return Response{}, ErrInvalidRequest
	}
	var out Response
	err := u.Games.With(req.GameID, func(state *game.State, _ *game.Engine) error {
		if req.Simple {
			simple := buildSimple(state)
			out.Simple = &simple
			return nil
		}
		full := Build(state)
		out.Full = &full
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// Build assembles the full observation. Callers must hold the game's
// session lock; Build itself only reads.
func Build(state *game.State) Observation {
	production := state.Map.TotalProduction()
	consumption := state.Map.TotalFoodConsumption()

	return Observation{
		GameInfo: GameInfo{
			CurrentTurn:     state.Turn,
			MaxTurns:        state.MaxTurns,
			ActionPoints:    state.ActionPoints,
			MaxActionPoints: state.MaxActionPoints,
			GameOver:        state.GameOver,
			Victory:         state.Victory,
		},
		Resources: ResourceInfo{
			Current:         state.Resources,
			Production:      production,
			FoodConsumption: consumption,
			NetFoodChange:   production.Food - consumption,
			ResearchPoints:  state.ResearchPoints,
			Technologies:    append([]string{}, state.Technologies...),
		},
		MapOverview: buildMapOverview(state),
		Territories: buildTerritories(state),
		Actions:     buildActionAdvice(),
		Events:      buildEventsInfo(state),
		Objectives:  buildObjectives(state),
		Statistics: Statistics{
			Score:         state.Score(),
			DetailedStats: state.Stats,
		},
	}
}

func buildSimple(state *game.State) SimpleObservation {
	return SimpleObservation{
		Turn:            state.Turn,
		ActionPoints:    state.ActionPoints,
		Resources:       state.Resources,
		ControlledTiles: len(state.Map.ControlledTiles()),
		Population:      state.Map.TotalPopulation(),
		GameOver:        state.GameOver,
		Victory:         state.Victory,
	}
}

func buildMapOverview(state *game.State) MapOverview {
	explorable := make([]Position, 0, frontierPositionLimit)
	expandable := make([]Position, 0, frontierPositionLimit)
	for x := 0; x < state.Map.Width; x++ {
		for y := 0; y < state.Map.Height; y++ {
			switch {
			case state.Map.CanExplore(x, y):
				if len(explorable) < frontierPositionLimit {
					explorable = append(explorable, Position{X: x, Y: y})
				}
			case state.Map.CanExpandTo(x, y):
				if len(expandable) < frontierPositionLimit {
					expandable = append(expandable, Position{X: x, Y: y})
				}
			}
		}
	}
	return MapOverview{
		Size:                MapSize{Width: state.Map.Width, Height: state.Map.Height},
		ControlledTiles:     len(state.Map.ControlledTiles()),
		ExploredTiles:       len(state.Map.ExploredTiles()),
		TotalPopulation:     state.Map.TotalPopulation(),
		ExplorablePositions: explorable,
		ExpandablePositions: expandable,
	}
}

func buildTerritories(state *game.State) []Territory {
	controlled := state.Map.ControlledTiles()
	out := make([]Territory, 0, len(controlled))
	for _, tile := range controlled {
		buildings := make([]string, 0, len(tile.Buildings))
		for _, b := range tile.Buildings {
			buildings = append(buildings, string(b))
		}
		out = append(out, Territory{
			Position:        Position{X: tile.X, Y: tile.Y},
			Terrain:         string(tile.Terrain),
			Population:      tile.Population,
			MaxPopulation:   tile.MaxPopulation,
			Buildings:       buildings,
			Production:      tile.Production(),
			FoodConsumption: tile.FoodConsumption(),
			Deposits:        tile.Deposits,
		})
	}
	return out
}

func buildActionAdvice() ActionAdvice {
	buildings := make([]BuildingSpec, 0, len(world.AllBuildings()))
	for _, b := range world.AllBuildings() {
		buildings = append(buildings, BuildingSpec{
			Type:   string(b),
			Cost:   b.Cost(),
			Effect: b.Effect(),
		})
	}
	expansion := game.ExpansionCost()
	research := game.ResearchCost()
	return ActionAdvice{ActionTypes: []ActionSpec{
		{
			Type:        string(game.ActionExplore),
			Cost:        game.ActionExplore.APCost(),
			Description: "reveal an adjacent unexplored tile",
			Parameters:  []string{"target_x", "target_y"},
		},
		{
			Type:         string(game.ActionExpand),
			Cost:         game.ActionExpand.APCost(),
			Description:  "take control of an explored adjacent tile",
			Parameters:   []string{"target_x", "target_y"},
			ResourceCost: &expansion,
		},
		{
			Type:        string(game.ActionExploit),
			Cost:        game.ActionExploit.APCost(),
			Description: "harvest extra resources from a controlled tile",
			Parameters:  []string{"target_x", "target_y"},
		},
		{
			Type:          string(game.ActionBuild),
			Cost:          game.ActionBuild.APCost(),
			Description:   "construct a building on a controlled tile",
			Parameters:    []string{"target_x", "target_y", "building_type"},
			BuildingTypes: buildings,
		},
		{
			Type:         string(game.ActionResearch),
			Cost:         game.ActionResearch.APCost(),
			Description:  "invest in technology research",
			ResourceCost: &research,
		},
		{
			Type:        string(game.ActionMigrate),
			Cost:        game.ActionMigrate.APCost(),
			Description: "rebalance population between controlled tiles",
		},
	}}
}

func buildEventsInfo(state *game.State) EventsInfo {
	active := make([]ActiveEvent, 0, len(state.ActiveEvents))
	for _, e := range state.ActiveEvents {
		active = append(active, ActiveEvent{
			Type:              string(e.Kind),
			Description:       e.Description,
			RemainingDuration: e.Duration,
		})
	}
	recent := make([]RecentEvent, 0, recentEventLimit)
	for _, e := range state.RecentEvents(recentEventLimit) {
		recent = append(recent, RecentEvent{Type: string(e.Kind), Description: e.Description})
	}
	return EventsInfo{Active: active, Recent: recent}
}

func buildObjectives(state *game.State) Objectives {
	progress := float64(state.Resources.Metal) / float64(game.VictoryMetal)
	if progress > 1 {
		progress = 1
	}
	return Objectives{
		Primary: PrimaryObjective{
			Description:          fmt.Sprintf("stockpile %d metal to win", game.VictoryMetal),
			CurrentProgress:      state.Resources.Metal,
			Target:               game.VictoryMetal,
			CompletionPercentage: progress * 100,
		},
		Secondary: []SecondaryObjective{
			{Description: "keep the population growing", Current: state.Map.TotalPopulation()},
			{Description: "avoid starvation events", Current: state.Stats.StarvationEvents},
			{Description: "explore more territory", Current: state.Stats.TilesExplored},
		},
	}
}
