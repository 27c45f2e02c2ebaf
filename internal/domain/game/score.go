package game

// ScoreBreakdown is the pure evaluation of a game, callable at any point.
type ScoreBreakdown struct {
	ResourceEfficiency float64 `json:"resource_efficiency"`
	PopulationHealth   float64 `json:"population_health"`
	GoalCompletion     float64 `json:"goal_completion"`
	StrategyDiversity  float64 `json:"strategy_diversity"`
	TotalScore         float64 `json:"total_score"`
}

// Score evaluates the current state. It never mutates anything.
func (s *State) Score() ScoreBreakdown {
	apUsed := s.Stats.TotalAPUsed
	if apUsed < 1 {
		apUsed = 1
	}
	efficiency := float64(s.Stats.ResourcesGathered.Total()) / float64(apUsed)

	maxPossible := len(s.Map.ControlledTiles()) * 100
	if maxPossible < 1 {
		maxPossible = 1
	}
	health := float64(s.Map.TotalPopulation()) / float64(maxPossible)

	goal := float64(s.Resources.Metal) / float64(VictoryMetal)
	if goal > 1 {
		goal = 1
	}

	diversity := 0.0
	if s.Stats.TilesExplored > 0 {
		diversity += 0.25
	}
	if s.Stats.TilesExpanded > 0 {
		diversity += 0.25
	}
	if s.Stats.BuildingsBuilt > 0 {
		diversity += 0.25
	}
	if len(s.Technologies) > 0 {
		diversity += 0.25
	}

	return ScoreBreakdown{
		ResourceEfficiency: efficiency,
		PopulationHealth:   health,
		GoalCompletion:     goal,
		StrategyDiversity:  diversity,
		TotalScore: efficiency*scoreWeightEfficiency +
			health*scoreWeightPopulation +
			goal*scoreWeightGoal +
			diversity*scoreWeightDiversity,
	}
}
