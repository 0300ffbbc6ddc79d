package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lingua-quiz-service/internal/config"
	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/infra/memory"
	pgloader "lingua-quiz-service/internal/infra/postgres"
	redisinfra "lingua-quiz-service/internal/infra/redis"
	"lingua-quiz-service/internal/logger"
)

type quizSaver interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

type quizCache interface {
	Invalidate(ctx context.Context, quizID string) error
}

// NewImportCmd loads a YAML quiz catalog into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <quizzes.yaml>",
		Short: "Import quizzes from a YAML file into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0])
		},
	}
}

func runImport(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	quizzes, err := memory.LoadQuizFile(file)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pgloader.NewQuizLoader(pool)
	var cache quizCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		cache = redisinfra.NewQuizRepository(client, store, config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute), log)
	}
	return importQuizzes(ctx, store, cache, quizzes, log)
}

// importQuizzes saves every quiz and drops its cached copy so running servers reload it.
func importQuizzes(ctx context.Context, store quizSaver, cache quizCache, quizzes map[string]domain.Quiz, log *zap.Logger) error {
	ids := make([]string, 0, len(quizzes))
	for id := range quizzes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		quiz := quizzes[id]
		if err := store.SaveQuiz(ctx, quiz); err != nil {
			return fmt.Errorf("import %s: %w", id, err)
		}
		if cache != nil {
			if err := cache.Invalidate(ctx, id); err != nil {
				return fmt.Errorf("invalidate %s: %w", id, err)
			}
		}
		log.Info("quiz imported", zap.String("quiz", id), zap.Int("questions", quiz.Count()))
	}
	return nil
}
