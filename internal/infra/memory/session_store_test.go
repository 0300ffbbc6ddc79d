package memory

import (
	"context"
	"errors"
	"testing"

	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	state := quiz.NewState("s1", "quiz-1")
	state.SelectedOption = 3
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != state {
		t.Fatalf("expected %+v, got %+v", state, got)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session removed, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}
