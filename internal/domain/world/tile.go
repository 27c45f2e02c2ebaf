package world

import (
	"math/rand"

	"terraverse/internal/domain/resource"
)

const (
	DefaultMaxPopulation = 100

	// FoodPerCapita is consumed by every inhabitant each turn.
	FoodPerCapita = 2

	populationProductionBonus = 0.01
	buildingProductionBonus   = 0.5
	farmFoodBonus             = 10
)

// Tile is one addressable map cell. It is created once at generation and
// mutated in place for the rest of the game; it is never destroyed.
type Tile struct {
	X       int
	Y       int
	Terrain Terrain

	// Deposits is the endowment discovered on the tile, distinct from the
	// global spendable stockpile.
	Deposits resource.Ledger

	Population    int
	MaxPopulation int
	Buildings     []Building

	Explored   bool
	Controlled bool
}

// NewTile seeds the terrain-specific endowment from rng.
func NewTile(x, y int, terrain Terrain, rng *rand.Rand) *Tile {
	t := &Tile{
		X:             x,
		Y:             y,
		Terrain:       terrain,
		MaxPopulation: DefaultMaxPopulation,
	}
	switch terrain {
	case TerrainMountain:
		t.Deposits.Ore = randRange(rng, 50, 200)
	case TerrainForest:
		t.Deposits.Wood = randRange(rng, 80, 150)
	case TerrainPlains:
		t.Deposits.Food = randRange(rng, 30, 100)
	case TerrainLake:
		t.Deposits.Food = randRange(rng, 40, 80)
	}
	return t
}

// Production is the tile's deterministic per-turn yield: terrain base rate,
// a linear population bonus, a flat farm bonus, then the multiplier from
// terrain-matched extraction buildings.
func (t *Tile) Production() resource.Ledger {
	out := t.Terrain.baseProduction()
	out = out.Scale(1 + float64(t.Population)*populationProductionBonus)

	multiplier := 1.0
	for _, b := range t.Buildings {
		switch {
		case b == BuildingMine && t.Terrain == TerrainMountain:
			multiplier += buildingProductionBonus
		case b == BuildingLumberMill && t.Terrain == TerrainForest:
			multiplier += buildingProductionBonus
		case b == BuildingFarm:
			out.Food += farmFoodBonus
		}
	}
	return out.Scale(multiplier)
}

// FoodConsumption is what the tile's population eats per turn.
func (t *Tile) FoodConsumption() int {
	return t.Population * FoodPerCapita
}

// HasBuilding reports whether the building kind is already present.
func (t *Tile) HasBuilding(b Building) bool {
	for _, existing := range t.Buildings {
		if existing == b {
			return true
		}
	}
	return false
}

// CanBuild checks the once-per-tile rule and the terrain restriction.
func (t *Tile) CanBuild(b Building) bool {
	return !t.HasBuilding(b) && b.allowedOn(t.Terrain)
}

// AddBuilding appends the building and applies its structural effect.
// Callers must have checked CanBuild.
func (t *Tile) AddBuilding(b Building) {
	t.Buildings = append(t.Buildings, b)
	if b == BuildingHouse {
		t.MaxPopulation += HouseCapacityBonus
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
