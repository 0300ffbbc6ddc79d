package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

// SessionStore keeps quiz sessions in Redis as JSON so any instance can serve them.
// Every save refreshes the TTL; an idle session expires and reads as not found.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *SessionStore) Save(ctx context.Context, state quiz.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(state.ID), data, s.ttl).Err()
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (quiz.State, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return quiz.State{}, fmt.Errorf("load session: %w", err)
	}
	var state quiz.State
	if err := json.Unmarshal(data, &state); err != nil {
		return quiz.State{}, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
