package store

import (
	"context"
	"sync"

	domaingames "github.com/preston-bernstein/trivia-grid-service/internal/domain/games"
)

// MemoryStore keeps games in a thread-safe map. Games are cloned on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]domaingames.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]domaingames.Game),
	}
}

// SaveGame inserts or replaces a game.
func (s *MemoryStore) SaveGame(ctx context.Context, game domaingames.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = game.Clone()
	return nil
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(ctx context.Context, id string) (domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	return g.Clone(), nil
}

// DeleteGame removes a game. Deleting an unknown id returns ErrNotFound.
func (s *MemoryStore) DeleteGame(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return domaingames.ErrNotFound
	}
	delete(s.games, id)
	return nil
}

// Len reports how many games are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
