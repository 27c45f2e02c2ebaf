package game

import (
	"math/rand"

	"terraverse/internal/domain/resource"
	"terraverse/internal/domain/world"
)

// Stats accumulates lifetime counters used by the score function.
type Stats struct {
	TotalAPUsed       int             `json:"total_ap_used"`
	ResourcesGathered resource.Ledger `json:"total_resources_gathered"`
	BuildingsBuilt    int             `json:"buildings_built"`
	TilesExplored     int             `json:"tiles_explored"`
	TilesExpanded     int             `json:"tiles_expanded"`
	StarvationEvents  int             `json:"starvation_events"`
}

// State is the single mutable aggregate for one game instance. It is not
// safe for concurrent use; callers serialize access per instance (the
// registry session lock does this for the service).
type State struct {
	Turn            int
	MaxTurns        int
	ActionPoints    int
	MaxActionPoints int

	// Resources is the global spendable stockpile, distinct from per-tile
	// endowments.
	Resources resource.Ledger

	Map *world.Map

	ResearchPoints int
	Technologies   []string

	ActiveEvents []Event
	EventHistory []Event

	GameOver bool
	Victory  bool

	Stats Stats

	rng *rand.Rand
}

// Params configures a new game. Zero values fall back to the defaults.
type Params struct {
	Width           int
	Height          int
	Seed            int64
	MaxTurns        int
	MaxActionPoints int
}

// New creates a game on a freshly generated width x height map. All
// randomness for the lifetime of the game flows from seed.
func New(width, height int, seed int64) *State {
	return NewFromParams(Params{Width: width, Height: height, Seed: seed})
}

func NewFromParams(p Params) *State {
	if p.MaxTurns <= 0 {
		p.MaxTurns = DefaultMaxTurns
	}
	if p.MaxActionPoints <= 0 {
		p.MaxActionPoints = DefaultMaxActionPts
	}
	rng := rand.New(rand.NewSource(p.Seed))
	return &State{
		Turn:            1,
		MaxTurns:        p.MaxTurns,
		ActionPoints:    p.MaxActionPoints,
		MaxActionPoints: p.MaxActionPoints,
		Resources:       StartingLedger(),
		Map:             world.Generate(p.Width, p.Height, rng),
		Technologies:    []string{},
		ActiveEvents:    []Event{},
		EventHistory:    []Event{},
		rng:             rng,
	}
}

// TurnReport summarizes what one resolution did, for logging.
type TurnReport struct {
	Production  resource.Ledger
	Consumption int
	Starved     bool
	Expired     []Event
	Triggered   *Event
}

// AdvanceTurn runs one full resolution cycle: AP reset, production,
// consumption, starvation, growth, event bookkeeping, random events, turn
// increment, termination check. It is a no-op once the game is over.
func (s *State) AdvanceTurn() TurnReport {
	if s.GameOver {
		return TurnReport{}
	}
	var report TurnReport

	s.ActionPoints = s.MaxActionPoints

	production := s.Map.TotalProduction()
	s.Resources = s.Resources.Add(production)
	s.Stats.ResourcesGathered = s.Stats.ResourcesGathered.Add(production)
	report.Production = production

	consumption := s.Map.TotalFoodConsumption()
	s.Resources = s.Resources.Sub(resource.Ledger{Food: consumption})
	report.Consumption = consumption

	if s.Resources.Food <= 0 {
		s.handleStarvation()
		report.Starved = true
	}

	s.handlePopulationGrowth()
	report.Expired = s.tickEvents()

	if s.rng.Float64() < randomEventChance {
		triggered := s.triggerRandomEvent()
		report.Triggered = &triggered
	}

	s.Turn++
	s.checkEndConditions()
	return report
}

func (s *State) handleStarvation() {
	s.Stats.StarvationEvents++
	for _, tile := range s.Map.ControlledTiles() {
		if tile.Population > 0 {
			loss := tile.Population / starvationLossDivisor
			if loss < 1 {
				loss = 1
			}
			tile.Population -= loss
			if tile.Population < 0 {
				tile.Population = 0
			}
		}
	}
	s.EventHistory = append(s.EventHistory, Event{
		Kind:        EventPlague,
		Description: "famine reduced the population",
		Duration:    1,
	})
}

func (s *State) handlePopulationGrowth() {
	if s.Resources.Food <= GrowthFoodThreshold {
		return
	}
	for _, tile := range s.Map.ControlledTiles() {
		if tile.Population >= tile.MaxPopulation {
			continue
		}
		rate := baseGrowthRate
		if tile.HasBuilding(world.BuildingHouse) {
			rate += houseGrowthRate
		}
		growth := int(float64(tile.Population) * rate)
		if growth < 1 {
			growth = 1
		}
		tile.Population += growth
		if tile.Population > tile.MaxPopulation {
			tile.Population = tile.MaxPopulation
		}
	}
}

func (s *State) tickEvents() []Event {
	var expired []Event
	remaining := s.ActiveEvents[:0]
	for _, event := range s.ActiveEvents {
		event.Duration--
		if event.Duration <= 0 {
			s.EventHistory = append(s.EventHistory, event)
			expired = append(expired, event)
			continue
		}
		remaining = append(remaining, event)
	}
	s.ActiveEvents = remaining
	return expired
}

func (s *State) triggerRandomEvent() Event {
	tpl := eventCatalog[s.rng.Intn(len(eventCatalog))]
	event := Event{
		Kind:        tpl.kind,
		Description: tpl.description,
		Duration:    eventDurationMin + s.rng.Intn(eventDurationMax-eventDurationMin+1),
	}
	s.ActiveEvents = append(s.ActiveEvents, event)

	// Only the one-shot events touch the ledger at trigger time.
	switch event.Kind {
	case EventHarvest:
		s.Resources.Food += harvestFoodBonus
	case EventDiscovery:
		s.Resources.Ore += discoveryOreBonus
	}
	return event
}

// checkEndConditions applies the fixed priority order: turn limit, metal
// victory, population collapse. The first match wins.
func (s *State) checkEndConditions() {
	if s.Turn >= s.MaxTurns {
		s.GameOver = true
		return
	}
	if s.Resources.Metal >= VictoryMetal {
		s.GameOver = true
		s.Victory = true
		return
	}
	if s.Map.TotalPopulation() <= 0 {
		s.GameOver = true
	}
}

// SpendAP decrements the action point budget. On failure nothing changes.
func (s *State) SpendAP(cost int) bool {
	if s.ActionPoints < cost {
		return false
	}
	s.ActionPoints -= cost
	s.Stats.TotalAPUsed += cost
	return true
}

// CanAfford reports whether the global stockpile covers cost.
func (s *State) CanAfford(cost resource.Ledger) bool {
	return s.Resources.CanAfford(cost)
}

// SpendResources is the checked withdrawal: the subtraction happens only
// when the stockpile covers the whole cost, so no field is ever clamped.
func (s *State) SpendResources(cost resource.Ledger) bool {
	if !s.Resources.CanAfford(cost) {
		return false
	}
	s.Resources = s.Resources.Sub(cost)
	return true
}

// RecentEvents returns up to n most recent history entries, oldest first.
func (s *State) RecentEvents(n int) []Event {
	if n <= 0 || len(s.EventHistory) == 0 {
		return []Event{}
	}
	if len(s.EventHistory) <= n {
		return append([]Event{}, s.EventHistory...)
	}
	return append([]Event{}, s.EventHistory[len(s.EventHistory)-n:]...)
}
