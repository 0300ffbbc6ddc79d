package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lingua-quiz-service/internal/app"
	"lingua-quiz-service/internal/catalog"
	"lingua-quiz-service/internal/config"
	"lingua-quiz-service/internal/infra/memory"
	pgloader "lingua-quiz-service/internal/infra/postgres"
	redisinfra "lingua-quiz-service/internal/infra/redis"
)

// backends holds the optional external connections opened from config.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.close()
			return nil, err
		}
		b.pool = pool
	}
	return b, nil
}

func (b *backends) close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

// quizLoader layers the content sources: Postgres, then a YAML file, then the compiled-in catalog.
func quizLoader(cfg config.Config, b *backends) (memory.QuizLoader, error) {
	var chain memory.FallbackLoader
	if b != nil && b.pool != nil {
		chain = append(chain, pgloader.NewQuizLoader(b.pool))
	}
	if cfg.Quiz.File != "" {
		quizzes, err := memory.LoadQuizFile(cfg.Quiz.File)
		if err != nil {
			return nil, err
		}
		chain = append(chain, memory.NewStaticQuizLoader(quizzes))
	}
	chain = append(chain, memory.NewStaticQuizLoader(catalog.Builtin()))
	return chain, nil
}

func quizRepository(cfg config.Config, b *backends, loader memory.QuizLoader, log *zap.Logger) app.QuizRepository {
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisinfra.NewQuizRepository(b.redis, loader, quizTTL, log)
	}
	return memory.NewQuizRepository(loader, quizTTL)
}

func sessionStore(cfg config.Config, b *backends) app.SessionRepository {
	if b.redis != nil {
		return redisinfra.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	}
	return memory.NewSessionStore()
}

func defaultQuiz(cfg config.Config) string {
	if cfg.Quiz.Default != "" {
		return cfg.Quiz.Default
	}
	return catalog.DefaultQuizID
}
