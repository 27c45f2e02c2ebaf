package world

import "terraverse/internal/domain/resource"

type Terrain string

const (
	TerrainPlains   Terrain = "plains"
	TerrainForest   Terrain = "forest"
	TerrainMountain Terrain = "mountain"
	TerrainLake     Terrain = "lake"
)

// ParseTerrain maps an external string onto the closed terrain set.
func ParseTerrain(s string) (Terrain, bool) {
	switch Terrain(s) {
	case TerrainPlains, TerrainForest, TerrainMountain, TerrainLake:
		return Terrain(s), true
	default:
		return "", false
	}
}

// baseProduction is the per-turn yield of an empty, unpopulated tile.
func (t Terrain) baseProduction() resource.Ledger {
	switch t {
	case TerrainMountain:
		return resource.Ledger{Ore: 5}
	case TerrainForest:
		return resource.Ledger{Wood: 8}
	case TerrainPlains:
		return resource.Ledger{Food: 6}
	case TerrainLake:
		return resource.Ledger{Food: 4}
	default:
		return resource.Ledger{}
	}
}
