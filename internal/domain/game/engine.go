package game

import (
	"fmt"
)

// Result reports one action's outcome. Precondition failures are normal
// results with Success=false, never Go errors; the game stays playable.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Engine validates and applies submitted actions against one game state.
// AP and resource spends happen before the kind-specific validation and
// are never refunded on a later precondition failure.
type Engine struct {
	state *State
}

func NewEngine(state *State) *Engine {
	return &Engine{state: state}
}

// ExecuteBatch runs payloads in order. A payload that does not parse fails
// without consuming AP; execution stops before the next payload once the
// AP budget is exhausted.
func (e *Engine) ExecuteBatch(payloads []Payload) []Result {
	results := make([]Result, 0, len(payloads))
	for _, p := range payloads {
		results = append(results, e.Execute(p))
		if e.state.ActionPoints <= 0 {
			break
		}
	}
	return results
}

// Execute parses and applies a single payload.
func (e *Engine) Execute(p Payload) Result {
	a, ok := parsePayload(p)
	if !ok {
		return failure("could not parse action")
	}
	if e.state.GameOver {
		return failure("game is already over")
	}

	switch a.kind {
	case ActionExplore:
		return e.explore(a)
	case ActionExpand:
		return e.expand(a)
	case ActionExploit:
		return e.exploit(a)
	case ActionBuild:
		return e.build(a)
	case ActionResearch:
		return e.research()
	case ActionMigrate:
		return e.migrate()
	default:
		return failure(fmt.Sprintf("action %s is not supported", a.kind))
	}
}

func (e *Engine) explore(a action) Result {
	if !e.state.SpendAP(ActionExplore.APCost()) {
		return failure("not enough action points")
	}
	if a.targetX == nil || a.targetY == nil {
		return failure("explore requires target coordinates")
	}
	x, y := *a.targetX, *a.targetY
	if !e.state.Map.Explore(x, y) {
		return failure(fmt.Sprintf("cannot explore (%d, %d)", x, y))
	}
	e.state.Stats.TilesExplored++
	tile := e.state.Map.Tile(x, y)
	return Result{
		Success: true,
		Message: fmt.Sprintf("explored (%d, %d)", x, y),
		Detail: map[string]any{
			"discovered": map[string]any{
				"terrain":    string(tile.Terrain),
				"resources":  tile.Deposits,
				"population": tile.Population,
			},
		},
	}
}

func (e *Engine) expand(a action) Result {
	if !e.state.SpendAP(ActionExpand.APCost()) {
		return failure("not enough action points")
	}
	if a.targetX == nil || a.targetY == nil {
		return failure("expand requires target coordinates")
	}
	x, y := *a.targetX, *a.targetY
	if !e.state.Map.CanExpandTo(x, y) {
		return failure(fmt.Sprintf("cannot expand to (%d, %d)", x, y))
	}
	cost := ExpansionCost()
	if !e.state.SpendResources(cost) {
		return failure("not enough resources to expand")
	}
	// The resources are already spent; a failure here is not refunded,
	// same policy as AP.
	if !e.state.Map.ExpandTo(x, y) {
		return failure(fmt.Sprintf("expansion to (%d, %d) failed", x, y))
	}
	e.state.Stats.TilesExpanded++
	return Result{
		Success: true,
		Message: fmt.Sprintf("expanded to (%d, %d)", x, y),
		Detail:  map[string]any{"cost": cost},
	}
}

func (e *Engine) exploit(a action) Result {
	if !e.state.SpendAP(ActionExploit.APCost()) {
		return failure("not enough action points")
	}
	if a.targetX == nil || a.targetY == nil {
		return failure("exploit requires target coordinates")
	}
	x, y := *a.targetX, *a.targetY
	tile := e.state.Map.Tile(x, y)
	if tile == nil || !tile.Controlled {
		return failure("only controlled tiles can be exploited")
	}
	bonus := tile.Production().Scale(0.5)
	e.state.Resources = e.state.Resources.Add(bonus)
	return Result{
		Success: true,
		Message: fmt.Sprintf("exploited (%d, %d)", x, y),
		Detail:  map[string]any{"gained_resources": bonus},
	}
}

func (e *Engine) build(a action) Result {
	if !e.state.SpendAP(ActionBuild.APCost()) {
		return failure("not enough action points")
	}
	if a.targetX == nil || a.targetY == nil {
		return failure("build requires target coordinates")
	}
	if !a.hasBuilding {
		return failure("build requires a building type")
	}
	x, y := *a.targetX, *a.targetY
	tile := e.state.Map.Tile(x, y)
	if tile == nil || !tile.Controlled {
		return failure("only controlled tiles can be built on")
	}
	if !tile.CanBuild(a.building) {
		return failure(fmt.Sprintf("cannot build %s on this tile", a.building))
	}
	cost := a.building.Cost()
	if !e.state.SpendResources(cost) {
		return failure("not enough resources to build")
	}
	tile.AddBuilding(a.building)
	e.state.Stats.BuildingsBuilt++
	return Result{
		Success: true,
		Message: fmt.Sprintf("built a %s at (%d, %d)", a.building, x, y),
		Detail:  map[string]any{"cost": cost},
	}
}

func (e *Engine) research() Result {
	if !e.state.SpendAP(ActionResearch.APCost()) {
		return failure("not enough action points")
	}
	cost := ResearchCost()
	if !e.state.SpendResources(cost) {
		return failure("not enough resources to research")
	}
	e.state.ResearchPoints += researchPointsPerAction

	if e.state.ResearchPoints >= researchUnlockCost {
		if tech, ok := e.nextTechnology(); ok {
			e.state.Technologies = append(e.state.Technologies, tech)
			e.state.ResearchPoints -= researchUnlockCost
			return Result{
				Success: true,
				Message: fmt.Sprintf("research unlocked %s", tech),
				Detail:  map[string]any{"technology": tech, "cost": cost},
			}
		}
	}
	return Result{
		Success: true,
		Message: "research progressed",
		Detail:  map[string]any{"research_points": e.state.ResearchPoints, "cost": cost},
	}
}

func (e *Engine) nextTechnology() (string, bool) {
	for _, tech := range TechCatalog() {
		known := false
		for _, have := range e.state.Technologies {
			if have == tech {
				known = true
				break
			}
		}
		if !known {
			return tech, true
		}
	}
	return "", false
}

const (
	migrateMinGap     = 5
	migrateMaxAmount  = 5
	migrateSourceCut  = 4
	migrateMinSources = 2
)

func (e *Engine) migrate() Result {
	if !e.state.SpendAP(ActionMigrate.APCost()) {
		return failure("not enough action points")
	}
	controlled := e.state.Map.ControlledTiles()
	if len(controlled) < migrateMinSources {
		return failure("migration needs at least 2 controlled tiles")
	}

	src, dst := controlled[0], controlled[0]
	for _, tile := range controlled {
		if tile.Population > src.Population {
			src = tile
		}
		if tile.Population < dst.Population {
			dst = tile
		}
	}
	if src.Population <= dst.Population+migrateMinGap {
		return failure("no suitable migration target")
	}

	amount := src.Population / migrateSourceCut
	if amount > migrateMaxAmount {
		amount = migrateMaxAmount
	}
	src.Population -= amount
	dst.Population += amount
	if dst.Population > dst.MaxPopulation {
		dst.Population = dst.MaxPopulation
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("migrated %d population", amount),
		Detail: map[string]any{
			"from":   map[string]int{"x": src.X, "y": src.Y},
			"to":     map[string]int{"x": dst.X, "y": dst.Y},
			"amount": amount,
		},
	}
}
