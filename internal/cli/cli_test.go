package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lingua-quiz-service/internal/catalog"
	"lingua-quiz-service/internal/config"
	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/infra/memory"
	redisinfra "lingua-quiz-service/internal/infra/redis"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"start", "migrate", "import", "play"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("missing subcommand %q: %v", name, err)
		}
	}
}

func TestMigrationsRequirePostgres(t *testing.T) {
	err := runMigrationsWithConfig(context.Background(), config.Config{}, nil)
	if err == nil {
		t.Fatalf("expected error without postgres url")
	}
}

func TestQuizLoaderLayersFileOverCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.yaml")
	body := `
quizzes:
  - id: extra
    title: Extra
    questions:
      - id: 1
        prompt: 'Select the correct translation for "voda":'
        options: [Water, Fire]
        etymology: 'From the Proto-Slavic *voda.'
        answer: 0
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Config{}
	cfg.Quiz.File = path

	loader, err := quizLoader(cfg, &backends{})
	if err != nil {
		t.Fatalf("quiz loader: %v", err)
	}
	ctx := context.Background()
	if _, err := loader.LoadQuiz(ctx, "extra"); err != nil {
		t.Fatalf("file quiz: %v", err)
	}
	if _, err := loader.LoadQuiz(ctx, catalog.DefaultQuizID); err != nil {
		t.Fatalf("catalog quiz: %v", err)
	}
	if _, err := loader.LoadQuiz(ctx, "nope"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestInMemoryWiringWithoutBackends(t *testing.T) {
	cfg := config.Config{}
	b := &backends{}
	loader, err := quizLoader(cfg, b)
	if err != nil {
		t.Fatalf("quiz loader: %v", err)
	}
	if _, ok := quizRepository(cfg, b, loader, nil).(*memory.QuizRepository); !ok {
		t.Fatalf("expected in-memory quiz repository")
	}
	if _, ok := sessionStore(cfg, b).(*memory.SessionStore); !ok {
		t.Fatalf("expected in-memory session store")
	}
	if defaultQuiz(cfg) != catalog.DefaultQuizID {
		t.Fatalf("unexpected default quiz %q", defaultQuiz(cfg))
	}
}

func TestDefaultWiringServesPeka(t *testing.T) {
	loader, err := quizLoader(config.Config{}, &backends{})
	if err != nil {
		t.Fatalf("quiz loader: %v", err)
	}
	quiz, err := loader.LoadQuiz(context.Background(), catalog.PekaQuizID)
	if err != nil {
		t.Fatalf("load peka: %v", err)
	}
	if quiz.Count() != 1 {
		t.Fatalf("expected one question, got %d", quiz.Count())
	}
}

type recordingSaver struct {
	saved []string
}

func (s *recordingSaver) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.saved = append(s.saved, quiz.ID)
	return nil
}

func TestImportInvalidatesCachedQuizzes(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	content := catalog.Builtin()
	repo := redisinfra.NewQuizRepository(client, memory.NewStaticQuizLoader(content), time.Minute, nil)
	if _, err := repo.GetQuiz(ctx, catalog.PekaQuizID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if !mr.Exists("quiz:content:" + catalog.PekaQuizID) {
		t.Fatalf("expected cached quiz content")
	}

	saver := &recordingSaver{}
	imported := map[string]domain.Quiz{catalog.PekaQuizID: content[catalog.PekaQuizID]}
	if err := importQuizzes(ctx, saver, repo, imported, zap.NewNop()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(saver.saved) != 1 || saver.saved[0] != catalog.PekaQuizID {
		t.Fatalf("unexpected saved quizzes %v", saver.saved)
	}
	if mr.Exists("quiz:content:" + catalog.PekaQuizID) {
		t.Fatalf("cached quiz content survived the import")
	}
}

func TestImportWithoutCache(t *testing.T) {
	saver := &recordingSaver{}
	if err := importQuizzes(context.Background(), saver, nil, catalog.Builtin(), zap.NewNop()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(saver.saved) != 2 || saver.saved[0] != catalog.PekaQuizID || saver.saved[1] != catalog.DefaultQuizID {
		t.Fatalf("expected sorted import, got %v", saver.saved)
	}
}
