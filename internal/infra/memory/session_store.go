package memory

import (
	"context"
	"sync"

	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]quiz.State
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]quiz.State),
	}
}

func (s *SessionStore) Save(_ context.Context, state quiz.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = state
	return nil
}

func (s *SessionStore) Load(_ context.Context, sessionID string) (quiz.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	return state, nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
