package app

import (
	"context"
	"fmt"
	"sync"

	"stratcore/domain/core"
	"stratcore/domain/strategy"
	"stratcore/ports"
)

// SessionManager owns the live accumulators and keeps them in sync with the
// persistence layer. Each session is single-threaded by contract; the mutex
// only guards the session map itself.
type SessionManager struct {
	repo     ports.ContextRepository
	mu       sync.RWMutex
	sessions map[core.SessionID]*Accumulator
}

// NewSessionManager creates a session manager backed by a context repository
func NewSessionManager(repo ports.ContextRepository) *SessionManager {
	return &SessionManager{
		repo:     repo,
		sessions: make(map[core.SessionID]*Accumulator),
	}
}

// CreateSession starts a new planning session and persists its empty context
func (sm *SessionManager) CreateSession(ctx context.Context, profile strategy.BusinessProfile) (*Accumulator, error) {
	sessionID := core.SessionID(core.NewID())
	acc := NewAccumulator(sessionID, profile)

	if err := sm.repo.Save(ctx, acc.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to persist new session: %w", err)
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = acc
	sm.mu.Unlock()

	return acc, nil
}

// GetSession returns the live accumulator for a session, rehydrating from the
// repository when the session is not in memory
func (sm *SessionManager) GetSession(ctx context.Context, sessionID core.SessionID) (*Accumulator, error) {
	sm.mu.RLock()
	acc, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if ok {
		return acc, nil
	}

	sctx, err := sm.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	acc = Rehydrate(*sctx)
	sm.mu.Lock()
	sm.sessions[sessionID] = acc
	sm.mu.Unlock()

	return acc, nil
}

// Persist writes the session's current context to the repository
func (sm *SessionManager) Persist(ctx context.Context, acc *Accumulator) error {
	return sm.repo.Save(ctx, acc.Snapshot())
}

// DeleteSession removes a session from memory and from the repository
func (sm *SessionManager) DeleteSession(ctx context.Context, sessionID core.SessionID) error {
	sm.mu.Lock()
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	return sm.repo.Delete(ctx, sessionID)
}
