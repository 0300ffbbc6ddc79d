// Package quiz implements the single-question quiz screen as pure transitions
// over an owned State value.
package quiz

import (
	"fmt"
	"time"

	"lingua-quiz-service/internal/domain"
)

// NoSelection marks a State without a chosen option.
const NoSelection = -1

// QuestionSource provides the questions a session walks through.
// domain.Quiz satisfies it.
type QuestionSource interface {
	QuestionAt(i int) (domain.Question, error)
	Count() int
}

// Phase names the state machine position derived from a State.
type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseRevealed  Phase = "revealed"
	PhaseCompleted Phase = "completed"
	PhaseFinished  Phase = "finished"
)

// State is the ephemeral progress of one quiz session.
type State struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	CurrentIndex   int       `json:"currentIndex"`
	SelectedOption int       `json:"selectedOption"`
	Revealed       bool      `json:"revealed"`
	Finished       bool      `json:"finished"`
	Answered       int       `json:"answered"`
	Correct        int       `json:"correct"`
	StartedAt      time.Time `json:"startedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Summary is returned when a session is finished.
type Summary struct {
	SessionID string `json:"sessionId"`
	QuizID    string `json:"quizId"`
	Total     int    `json:"total"`
	Answered  int    `json:"answered"`
	Correct   int    `json:"correct"`
}

// NewState returns a session positioned on the first question with nothing selected.
func NewState(id, quizID string) State {
	return State{
		ID:             id,
		QuizID:         quizID,
		SelectedOption: NoSelection,
	}
}

// HasSelection reports whether an option is currently chosen.
func (s State) HasSelection() bool {
	return s.SelectedOption != NoSelection
}

// Phase derives the state machine position for a source of total questions.
func (s State) Phase(total int) Phase {
	switch {
	case s.Finished:
		return PhaseFinished
	case s.CurrentIndex >= total:
		return PhaseCompleted
	case s.Revealed:
		return PhaseRevealed
	default:
		return PhaseAnswering
	}
}

// SelectOption chooses option i of the current question.
func SelectOption(s State, src QuestionSource, i int) (State, error) {
	if s.Finished {
		return s, domain.ErrSessionFinished
	}
	if s.Revealed {
		return s, fmt.Errorf("%w: answer already revealed", domain.ErrInvalidTransition)
	}
	question, err := current(s, src)
	if err != nil {
		return s, err
	}
	if i < 0 || i >= len(question.Options) {
		return s, fmt.Errorf("%w: %d not in [0,%d)", domain.ErrOptionOutOfRange, i, len(question.Options))
	}
	s.SelectedOption = i
	return s, nil
}

// Submit reveals the etymology of the current question. It requires a selection.
func Submit(s State, src QuestionSource) (State, error) {
	if s.Finished {
		return s, domain.ErrSessionFinished
	}
	if s.Revealed {
		return s, fmt.Errorf("%w: answer already revealed", domain.ErrInvalidTransition)
	}
	if !s.HasSelection() {
		return s, fmt.Errorf("%w: submit without a selected option", domain.ErrInvalidTransition)
	}
	question, err := current(s, src)
	if err != nil {
		return s, err
	}
	s.Revealed = true
	s.Answered++
	if question.IsCorrect(s.SelectedOption) {
		s.Correct++
	}
	return s, nil
}

// Advance moves past a revealed question. Advancing from the last question
// leaves the session completed with CurrentIndex equal to the question count.
func Advance(s State, src QuestionSource) (State, error) {
	if s.Finished {
		return s, domain.ErrSessionFinished
	}
	if !s.Revealed {
		return s, fmt.Errorf("%w: advance before reveal", domain.ErrInvalidTransition)
	}
	s.SelectedOption = NoSelection
	s.Revealed = false
	s.CurrentIndex++
	return s, nil
}

// Finish ends the session. Calling it again returns the same summary.
func Finish(s State, src QuestionSource) (State, Summary) {
	s.Finished = true
	return s, Summary{
		SessionID: s.ID,
		QuizID:    s.QuizID,
		Total:     src.Count(),
		Answered:  s.Answered,
		Correct:   s.Correct,
	}
}

func current(s State, src QuestionSource) (domain.Question, error) {
	if s.CurrentIndex >= src.Count() {
		return domain.Question{}, fmt.Errorf("%w: no questions left", domain.ErrInvalidTransition)
	}
	return src.QuestionAt(s.CurrentIndex)
}
