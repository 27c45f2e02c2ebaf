package observe

import (
	"terraverse/internal/domain/game"
	"terraverse/internal/domain/resource"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Observation is the full read-only projection handed to the external
// agent. Building it never mutates game state.
type Observation struct {
	GameInfo    GameInfo     `json:"game_info"`
	Resources   ResourceInfo `json:"resources"`
	MapOverview MapOverview  `json:"map_overview"`
	Territories []Territory  `json:"controlled_territories"`
	Actions     ActionAdvice `json:"available_actions"`
	Events      EventsInfo   `json:"events"`
	Objectives  Objectives   `json:"objectives"`
	Statistics  Statistics   `json:"statistics"`
}

type GameInfo struct {
	CurrentTurn     int  `json:"current_turn"`
	MaxTurns        int  `json:"max_turns"`
	ActionPoints    int  `json:"action_points_remaining"`
	MaxActionPoints int  `json:"max_action_points"`
	GameOver        bool `json:"game_over"`
	Victory         bool `json:"victory"`
}

type ResourceInfo struct {
	Current         resource.Ledger `json:"current_resources"`
	Production      resource.Ledger `json:"production_per_turn"`
	FoodConsumption int             `json:"food_consumption_per_turn"`
	NetFoodChange   int             `json:"net_food_change"`
	ResearchPoints  int             `json:"research_points"`
	Technologies    []string        `json:"technologies"`
}

type MapOverview struct {
	Size                MapSize    `json:"map_size"`
	ControlledTiles     int        `json:"controlled_tiles_count"`
	ExploredTiles       int        `json:"explored_tiles_count"`
	TotalPopulation     int        `json:"total_population"`
	ExplorablePositions []Position `json:"explorable_positions"`
	ExpandablePositions []Position `json:"expandable_positions"`
}

type MapSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Territory struct {
	Position        Position        `json:"position"`
	Terrain         string          `json:"terrain"`
	Population      int             `json:"population"`
	MaxPopulation   int             `json:"max_population"`
	Buildings       []string        `json:"buildings"`
	Production      resource.Ledger `json:"resource_production"`
	FoodConsumption int             `json:"food_consumption"`
	Deposits        resource.Ledger `json:"available_resources"`
}

type ActionAdvice struct {
	ActionTypes []ActionSpec `json:"action_types"`
}

type ActionSpec struct {
	Type          string           `json:"type"`
	Cost          int              `json:"cost"`
	Description   string           `json:"description"`
	Parameters    []string         `json:"parameters,omitempty"`
	ResourceCost  *resource.Ledger `json:"resource_cost,omitempty"`
	BuildingTypes []BuildingSpec   `json:"building_types,omitempty"`
}

type BuildingSpec struct {
	Type   string          `json:"type"`
	Cost   resource.Ledger `json:"cost"`
	Effect string          `json:"effect"`
}

type EventsInfo struct {
	Active []ActiveEvent `json:"active_events"`
	Recent []RecentEvent `json:"recent_events"`
}

type ActiveEvent struct {
	Type              string `json:"type"`
	Description       string `json:"description"`
	RemainingDuration int    `json:"remaining_duration"`
}

type RecentEvent struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Objectives struct {
	Primary   PrimaryObjective     `json:"primary_objective"`
	Secondary []SecondaryObjective `json:"secondary_objectives"`
}

type PrimaryObjective struct {
	Description          string  `json:"description"`
	CurrentProgress      int     `json:"current_progress"`
	Target               int     `json:"target"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type SecondaryObjective struct {
	Description string `json:"description"`
	Current     int    `json:"current"`
}

type Statistics struct {
	Score         game.ScoreBreakdown `json:"performance_metrics"`
	DetailedStats game.Stats          `json:"detailed_stats"`
}

// SimpleObservation is the reduced projection for high-frequency polling.
type SimpleObservation struct {
	Turn            int             `json:"turn"`
	ActionPoints    int             `json:"ap"`
	Resources       resource.Ledger `json:"resources"`
	ControlledTiles int             `json:"controlled_tiles"`
	Population      int             `json:"population"`
	GameOver        bool            `json:"game_over"`
	Victory         bool            `json:"victory"`
}
