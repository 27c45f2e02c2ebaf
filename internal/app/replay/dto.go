package replay

import "terraverse/internal/app/ports"

type Request struct {
	GameID string
	Limit  int

	// Optional turn window; zero means unbounded on that side.
	TurnFrom int
	TurnTo   int
}

type Response struct {
	Events  []ports.TurnEventRecord `json:"events"`
	Summary Summary                 `json:"summary"`
}

// Summary is reconstructed from the event log alone, so it stays usable
// after the live game has been evicted from the registry.
type Summary struct {
	GameID            string         `json:"game_id"`
	LastTurn          int            `json:"last_turn"`
	ActionCounts      map[string]int `json:"action_counts"`
	SuccessfulActions int            `json:"successful_actions"`
	FailedActions     int            `json:"failed_actions"`
	TurnsAdvanced     int            `json:"turns_advanced"`
	GameOver          bool           `json:"game_over"`
	Victory           bool           `json:"victory"`
}
