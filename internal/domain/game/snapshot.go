package game

import (
	"fmt"

	"terraverse/internal/domain/resource"
)

// Snapshot is the serializable projection of a whole game, used by the
// persistence adapters. It carries values only, never live pointers.
type Snapshot struct {
	Turn            int             `json:"turn"`
	MaxTurns        int             `json:"max_turns"`
	ActionPoints    int             `json:"action_points"`
	MaxActionPoints int             `json:"max_action_points"`
	GlobalResources resource.Ledger `json:"global_resources"`
	ResearchPoints  int             `json:"research_points"`
	Technologies    []string        `json:"technologies"`
	ActiveEvents    []Event         `json:"active_events"`
	GameOver        bool            `json:"game_over"`
	Victory         bool            `json:"victory"`
	Map             MapSnapshot     `json:"map"`
	Stats           Stats           `json:"stats"`
	Score           ScoreBreakdown  `json:"score"`
}

type MapSnapshot struct {
	Width  int                     `json:"width"`
	Height int                     `json:"height"`
	Tiles  map[string]TileSnapshot `json:"tiles"`
}

type TileSnapshot struct {
	Terrain       string          `json:"terrain"`
	Resources     resource.Ledger `json:"resources"`
	Population    int             `json:"population"`
	MaxPopulation int             `json:"max_population"`
	Buildings     []string        `json:"buildings"`
	Explored      bool            `json:"explored"`
	Controlled    bool            `json:"controlled"`
}

// Snapshot projects the current state. Read-only.
func (s *State) Snapshot() Snapshot {
	tiles := make(map[string]TileSnapshot, s.Map.Width*s.Map.Height)
	for x := 0; x < s.Map.Width; x++ {
		for y := 0; y < s.Map.Height; y++ {
			tile := s.Map.Tile(x, y)
			buildings := make([]string, 0, len(tile.Buildings))
			for _, b := range tile.Buildings {
				buildings = append(buildings, string(b))
			}
			tiles[fmt.Sprintf("%d,%d", x, y)] = TileSnapshot{
				Terrain:       string(tile.Terrain),
				Resources:     tile.Deposits,
				Population:    tile.Population,
				MaxPopulation: tile.MaxPopulation,
				Buildings:     buildings,
				Explored:      tile.Explored,
				Controlled:    tile.Controlled,
			}
		}
	}
	return Snapshot{
		Turn:            s.Turn,
		MaxTurns:        s.MaxTurns,
		ActionPoints:    s.ActionPoints,
		MaxActionPoints: s.MaxActionPoints,
		GlobalResources: s.Resources,
		ResearchPoints:  s.ResearchPoints,
		Technologies:    append([]string{}, s.Technologies...),
		ActiveEvents:    append([]Event{}, s.ActiveEvents...),
		GameOver:        s.GameOver,
		Victory:         s.Victory,
		Map: MapSnapshot{
			Width:  s.Map.Width,
			Height: s.Map.Height,
			Tiles:  tiles,
		},
		Stats: s.Stats,
		Score: s.Score(),
	}
}
