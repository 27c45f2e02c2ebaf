package ports

import "terraverse/internal/domain/game"

// GameRegistry owns the live game sessions. With runs fn while holding
// the session's exclusive lock, so observation reads and state mutation
// against one game never interleave; distinct games are independent.
type GameRegistry interface {
	Create(params game.Params) string
	With(gameID string, fn func(state *game.State, engine *game.Engine) error) error
	Remove(gameID string) bool
	Len() int
}
