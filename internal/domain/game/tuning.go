package game

import "terraverse/internal/domain/resource"

const (
	DefaultMaxTurns     = 100
	DefaultMaxActionPts = 5

	// VictoryMetal is the stockpile that wins the game.
	VictoryMetal = 1000

	// Population grows only while the global food stock exceeds this.
	GrowthFoodThreshold = 50

	baseGrowthRate  = 0.02
	houseGrowthRate = 0.01

	starvationLossDivisor = 10

	randomEventChance = 0.15
	eventDurationMin  = 1
	eventDurationMax  = 3

	harvestFoodBonus  = 50
	discoveryOreBonus = 30

	researchPointsPerAction = 10
	researchUnlockCost      = 30
)

// StartingLedger is the global stockpile every new game begins with.
func StartingLedger() resource.Ledger {
	return resource.Ledger{Ore: 50, Wood: 50, Metal: 20, Food: 100}
}

// ExpansionCost is charged when expanding into an explored tile.
func ExpansionCost() resource.Ledger {
	return resource.Ledger{Food: 20, Wood: 10}
}

// ResearchCost is charged per research action.
func ResearchCost() resource.Ledger {
	return resource.Ledger{Metal: 15, Food: 10}
}

// TechCatalog is the fixed unlock order for research.
func TechCatalog() []string {
	return []string{
		"efficient_agriculture",
		"advanced_mining",
		"metal_smelting",
		"population_management",
	}
}

// Score weights, fixed.
const (
	scoreWeightEfficiency = 0.3
	scoreWeightPopulation = 0.2
	scoreWeightGoal       = 0.4
	scoreWeightDiversity  = 0.1
)
