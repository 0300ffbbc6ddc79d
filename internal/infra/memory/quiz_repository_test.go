package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lingua-quiz-service/internal/catalog"
	"lingua-quiz-service/internal/domain"
)

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(catalog.Builtin()),
	}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), catalog.DefaultQuizID); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls.Load())
	}

	if _, err := repo.GetQuiz(context.Background(), catalog.DefaultQuizID); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls.Load())
	}
}

func TestQuizRepositoryExpires(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(catalog.Builtin())}
	repo := NewQuizRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuiz(context.Background(), catalog.DefaultQuizID)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), catalog.DefaultQuizID)
	if loader.calls.Load() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls.Load())
	}
}

func TestQuizRepositoryRejectsInvalidContent(t *testing.T) {
	repo := NewQuizRepository(NewStaticQuizLoader(map[string]domain.Quiz{
		"broken": {ID: "broken", Questions: []domain.Question{{ID: 1, Prompt: "only one", Options: []string{"a"}}}},
	}), time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "broken"); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	if _, err := repo.GetQuiz(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizRepositoryDeduplicatesConcurrentLoads(t *testing.T) {
	release := make(chan struct{})
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(catalog.Builtin()), block: release}
	repo := NewQuizRepository(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.GetQuiz(context.Background(), catalog.DefaultQuizID); err != nil {
				t.Errorf("get quiz: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if loader.calls.Load() != 1 {
		t.Fatalf("expected a single load, got %d", loader.calls.Load())
	}
}

func TestLoadQuizFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.yaml")
	body := `
quizzes:
  - id: greek
    title: Greek roots
    questions:
      - id: 1
        prompt: 'Select the correct translation for "hodos":'
        options: [Road, Sea]
        etymology: 'From Ancient Greek hodós "way".'
        answer: 0
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	quizzes, err := LoadQuizFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	q := quizzes["greek"]
	if q.Count() != 1 || q.Questions[0].EtymologyNote == "" || !q.Questions[0].IsCorrect(0) {
		t.Fatalf("unexpected quiz %+v", q)
	}
}

func TestFallbackLoader(t *testing.T) {
	loader := FallbackLoader{
		NewStaticQuizLoader(map[string]domain.Quiz{}),
		NewStaticQuizLoader(catalog.Builtin()),
	}
	q, err := loader.LoadQuiz(context.Background(), catalog.DefaultQuizID)
	if err != nil || q.ID != catalog.DefaultQuizID {
		t.Fatalf("expected fallback hit, got %+v err=%v", q, err)
	}
	if _, err := loader.LoadQuiz(context.Background(), "nope"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	QuizLoader
	calls atomic.Int32
	block chan struct{}
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls.Add(1)
	if l.block != nil {
		<-l.block
	}
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}
