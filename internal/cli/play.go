package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lingua-quiz-service/internal/config"
	"lingua-quiz-service/internal/tui"
)

// NewPlayCmd runs the quiz screen in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, quizID)
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id (defaults to quiz.default)")
	return cmd
}

func runPlay(ctx context.Context, configPath, quizID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if quizID == "" {
		quizID = defaultQuiz(cfg)
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	loader, err := quizLoader(cfg, b)
	if err != nil {
		return err
	}
	content, err := loader.LoadQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if err := content.Validate(); err != nil {
		return err
	}

	final, err := tea.NewProgram(tui.NewModel(content), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Summary() != nil {
		s := m.Summary()
		fmt.Printf("%d of %d answered, %d correct\n", s.Answered, s.Total, s.Correct)
	}
	return nil
}
