package inmemory

import (
	"sync"

	"terraverse/internal/app/ports"
	"terraverse/internal/domain/game"

	"github.com/google/uuid"
)

// session pairs one live game with its exclusive lock. All reads and
// writes against the game go through the lock; games never share state.
type session struct {
	mu     sync.Mutex
	state  *game.State
	engine *game.Engine
}

// Registry keeps live games in memory, keyed by uuid.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*session)}
}

func (r *Registry) Create(params game.Params) string {
	state := game.NewFromParams(params)
	s := &session{state: state, engine: game.NewEngine(state)}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

// With runs fn under the game's lock. Returns ports.ErrNotFound for an
// unknown id; otherwise fn's error is passed through.
func (r *Registry) With(gameID string, fn func(state *game.State, engine *game.Engine) error) error {
	r.mu.RLock()
	s, ok := r.sessions[gameID]
	r.mu.RUnlock()
	if !ok {
		return ports.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state, s.engine)
}

func (r *Registry) Remove(gameID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[gameID]; !ok {
		return false
	}
	delete(r.sessions, gameID)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
