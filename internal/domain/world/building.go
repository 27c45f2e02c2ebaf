package world

import "terraverse/internal/domain/resource"

type Building string

const (
	BuildingMine       Building = "mine"
	BuildingLumberMill Building = "lumber_mill"
	BuildingFarm       Building = "farm"
	BuildingSmelter    Building = "smelter"
	BuildingHouse      Building = "house"
)

// HouseCapacityBonus is added to a tile's max population per house built.
const HouseCapacityBonus = 50

// ParseBuilding maps an external string onto the closed building set.
func ParseBuilding(s string) (Building, bool) {
	switch Building(s) {
	case BuildingMine, BuildingLumberMill, BuildingFarm, BuildingSmelter, BuildingHouse:
		return Building(s), true
	default:
		return "", false
	}
}

// Cost returns the fixed construction cost of the building.
func (b Building) Cost() resource.Ledger {
	switch b {
	case BuildingMine:
		return resource.Ledger{Wood: 20, Metal: 10}
	case BuildingLumberMill:
		return resource.Ledger{Wood: 15, Metal: 5}
	case BuildingFarm:
		return resource.Ledger{Wood: 10, Ore: 5}
	case BuildingSmelter:
		return resource.Ledger{Wood: 25, Ore: 15}
	case BuildingHouse:
		return resource.Ledger{Wood: 15, Ore: 5}
	default:
		return resource.Ledger{}
	}
}

// Effect is a short description used in the observation's action catalog.
func (b Building) Effect() string {
	switch b {
	case BuildingMine:
		return "boosts ore production on mountains"
	case BuildingLumberMill:
		return "boosts wood production in forests"
	case BuildingFarm:
		return "adds flat food production"
	case BuildingSmelter:
		return "converts ore into metal"
	case BuildingHouse:
		return "raises the tile's population capacity"
	default:
		return ""
	}
}

// allowedOn enforces the terrain restriction: mines need mountains and
// lumber mills need forests, everything else builds anywhere.
func (b Building) allowedOn(t Terrain) bool {
	switch b {
	case BuildingMine:
		return t == TerrainMountain
	case BuildingLumberMill:
		return t == TerrainForest
	default:
		return true
	}
}

// AllBuildings lists the catalog in a stable order.
func AllBuildings() []Building {
	return []Building{BuildingMine, BuildingLumberMill, BuildingFarm, BuildingSmelter, BuildingHouse}
}
