package migrations

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"lingua-quiz-service/internal/catalog"
)

// The compiled-in catalog is seeded so a fresh database serves /tests immediately.
func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for _, quiz := range catalog.Builtin() {
				data, err := json.Marshal(quiz)
				if err != nil {
					return err
				}
				if _, err := db.ExecContext(ctx,
					`INSERT INTO quizzes (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
					quiz.ID, string(data),
				); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			for id := range catalog.Builtin() {
				if _, err := db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id); err != nil {
					return err
				}
			}
			return nil
		},
	)
}
