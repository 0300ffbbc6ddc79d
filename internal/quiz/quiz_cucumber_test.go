//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"lingua-quiz-service/internal/catalog"
	"lingua-quiz-service/internal/domain"
)

// TestQuizScreenScenarios runs the quiz screen feature scenarios.
func TestQuizScreenScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-screen",
		ScenarioInitializer: InitializeQuizScreenScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "quiz_screen.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScreenScenario wires steps for quiz screen scenarios.
func InitializeQuizScreenScenario(ctx *godog.ScenarioContext) {
	sc := &screenScenario{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*sc = screenScenario{}
		return ctx, nil
	})

	ctx.Step(`^the single question quiz about "([^"]+)"$`, sc.givenQuiz)
	ctx.Step(`^I select option (\d+)$`, sc.whenSelect)
	ctx.Step(`^I submit$`, sc.whenSubmit)
	ctx.Step(`^I advance$`, sc.whenAdvance)
	ctx.Step(`^the selected option is (\d+)$`, sc.thenSelected)
	ctx.Step(`^nothing is selected$`, sc.thenNothingSelected)
	ctx.Step(`^the answer is revealed$`, sc.thenRevealed)
	ctx.Step(`^the answer is hidden$`, sc.thenHidden)
	ctx.Step(`^the etymology equals the stored note$`, sc.thenEtymology)
	ctx.Step(`^the current index is (\d+)$`, sc.thenIndex)
	ctx.Step(`^the transition is rejected$`, sc.thenRejected)
}

type screenScenario struct {
	src     domain.Quiz
	state   State
	lastErr error
}

func (s *screenScenario) givenQuiz(word string) error {
	s.src = catalog.Peka()
	s.state = NewState("scenario", s.src.ID)
	return nil
}

func (s *screenScenario) whenSelect(i int) error {
	s.state, s.lastErr = SelectOption(s.state, s.src, i)
	return nil
}

func (s *screenScenario) whenSubmit() error {
	s.state, s.lastErr = Submit(s.state, s.src)
	return nil
}

func (s *screenScenario) whenAdvance() error {
	s.state, s.lastErr = Advance(s.state, s.src)
	return nil
}

func (s *screenScenario) thenSelected(i int) error {
	if s.state.SelectedOption != i {
		return fmt.Errorf("expected option %d, got %d", i, s.state.SelectedOption)
	}
	return nil
}

func (s *screenScenario) thenNothingSelected() error {
	if s.state.HasSelection() {
		return fmt.Errorf("expected no selection, got %d", s.state.SelectedOption)
	}
	return nil
}

func (s *screenScenario) thenRevealed() error {
	if !s.state.Revealed {
		return errors.New("expected revealed state")
	}
	return nil
}

func (s *screenScenario) thenHidden() error {
	if s.state.Revealed {
		return errors.New("expected hidden answer")
	}
	return nil
}

func (s *screenScenario) thenEtymology() error {
	got := Render(s.state, s.src).Etymology
	if got != s.src.Questions[0].EtymologyNote {
		return fmt.Errorf("unexpected etymology %q", got)
	}
	return nil
}

func (s *screenScenario) thenIndex(i int) error {
	if s.state.CurrentIndex != i {
		return fmt.Errorf("expected index %d, got %d", i, s.state.CurrentIndex)
	}
	return nil
}

func (s *screenScenario) thenRejected() error {
	if !errors.Is(s.lastErr, domain.ErrInvalidTransition) {
		return fmt.Errorf("expected invalid transition, got %v", s.lastErr)
	}
	return nil
}
