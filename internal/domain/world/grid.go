package world

import (
	"math/rand"

	"terraverse/internal/domain/resource"
)

const (
	// StartPopulation lives on the forced starting tile.
	StartPopulation = 20

	inhabitedTileChance = 0.3
	inhabitedPopMin     = 5
	inhabitedPopMax     = 25
)

// TerrainWeight drives the weighted terrain draw during generation.
type TerrainWeight struct {
	Terrain Terrain
	Weight  float64
}

// DefaultTerrainWeights is the standard distribution: mostly plains, some
// forest, fewer mountains, rare lakes.
func DefaultTerrainWeights() []TerrainWeight {
	return []TerrainWeight{
		{TerrainPlains, 0.4},
		{TerrainForest, 0.3},
		{TerrainMountain, 0.2},
		{TerrainLake, 0.1},
	}
}

// Map owns the dense tile grid, one tile per coordinate.
type Map struct {
	Width  int
	Height int

	tiles map[[2]int]*Tile
}

// Generate builds a map with the default terrain distribution.
func Generate(width, height int, rng *rand.Rand) *Map {
	return GenerateWeighted(width, height, DefaultTerrainWeights(), rng)
}

// GenerateWeighted assigns each cell a terrain via weighted draw, seeds
// endowments and scattered pre-existing inhabitants, then forces the center
// cell to a controlled plains settlement.
func GenerateWeighted(width, height int, weights []TerrainWeight, rng *rand.Rand) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		tiles:  make(map[[2]int]*Tile, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			tile := NewTile(x, y, drawTerrain(weights, rng), rng)
			if rng.Float64() < inhabitedTileChance {
				tile.Population = randRange(rng, inhabitedPopMin, inhabitedPopMax)
			}
			m.tiles[[2]int{x, y}] = tile
		}
	}

	// The start tile is always a known, administered plains settlement,
	// whatever the random draw said.
	start := m.tiles[[2]int{width / 2, height / 2}]
	start.Terrain = TerrainPlains
	start.Population = StartPopulation
	start.Explored = true
	start.Controlled = true
	return m
}

func drawTerrain(weights []TerrainWeight, rng *rand.Rand) Terrain {
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	roll := rng.Float64() * total
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Terrain
		}
	}
	return weights[len(weights)-1].Terrain
}

// Tile returns the tile at (x, y), or nil when out of bounds.
func (m *Map) Tile(x, y int) *Tile {
	return m.tiles[[2]int{x, y}]
}

// Neighbors returns the up/down/left/right tiles, excluding out-of-bounds.
func (m *Map) Neighbors(x, y int) []*Tile {
	out := make([]*Tile, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if t := m.Tile(x+d[0], y+d[1]); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// CanExplore reports whether (x, y) exists, is unexplored, and borders
// controlled territory.
func (m *Map) CanExplore(x, y int) bool {
	tile := m.Tile(x, y)
	if tile == nil || tile.Explored {
		return false
	}
	return m.bordersControlled(x, y)
}

// CanExpandTo reports whether (x, y) exists, is explored but uncontrolled,
// and borders controlled territory.
func (m *Map) CanExpandTo(x, y int) bool {
	tile := m.Tile(x, y)
	if tile == nil || tile.Controlled || !tile.Explored {
		return false
	}
	return m.bordersControlled(x, y)
}

// Explore marks the tile explored. Precondition failure is a normal
// outcome, reported as false.
func (m *Map) Explore(x, y int) bool {
	if !m.CanExplore(x, y) {
		return false
	}
	m.Tile(x, y).Explored = true
	return true
}

// ExpandTo marks the tile controlled. Precondition failure is a normal
// outcome, reported as false.
func (m *Map) ExpandTo(x, y int) bool {
	if !m.CanExpandTo(x, y) {
		return false
	}
	m.Tile(x, y).Controlled = true
	return true
}

func (m *Map) bordersControlled(x, y int) bool {
	for _, n := range m.Neighbors(x, y) {
		if n.Controlled {
			return true
		}
	}
	return false
}

// ControlledTiles returns every tile under administration, in row-major order.
func (m *Map) ControlledTiles() []*Tile {
	return m.collect(func(t *Tile) bool { return t.Controlled })
}

// ExploredTiles returns every known tile, in row-major order.
func (m *Map) ExploredTiles() []*Tile {
	return m.collect(func(t *Tile) bool { return t.Explored })
}

func (m *Map) collect(keep func(*Tile) bool) []*Tile {
	out := make([]*Tile, 0, len(m.tiles))
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			if t := m.tiles[[2]int{x, y}]; keep(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// TotalPopulation sums population over controlled tiles.
func (m *Map) TotalPopulation() int {
	total := 0
	for _, t := range m.ControlledTiles() {
		total += t.Population
	}
	return total
}

// TotalProduction sums per-turn production over controlled tiles.
func (m *Map) TotalProduction() resource.Ledger {
	total := resource.Ledger{}
	for _, t := range m.ControlledTiles() {
		total = total.Add(t.Production())
	}
	return total
}

// TotalFoodConsumption sums food upkeep over controlled tiles.
func (m *Map) TotalFoodConsumption() int {
	total := 0
	for _, t := range m.ControlledTiles() {
		total += t.FoodConsumption()
	}
	return total
}

// TotalDeposits sums the remaining endowments of controlled tiles.
func (m *Map) TotalDeposits() resource.Ledger {
	total := resource.Ledger{}
	for _, t := range m.ControlledTiles() {
		total = total.Add(t.Deposits)
	}
	return total
}
