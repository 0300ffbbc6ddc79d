package domain

import "fmt"

// Question is a single multiple-choice prompt with its etymology explanation.
type Question struct {
	ID            int      `json:"id" yaml:"id"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Options       []string `json:"options" yaml:"options"`
	EtymologyNote string   `json:"etymologyNote" yaml:"etymology"`
	// Answer is the index of the correct option; nil leaves the question ungraded.
	Answer *int `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// Graded reports whether the question carries a correct option.
func (q Question) Graded() bool {
	return q.Answer != nil
}

// IsCorrect reports whether option is the correct answer. Ungraded questions are never correct.
func (q Question) IsCorrect(option int) bool {
	return q.Answer != nil && *q.Answer == option
}

// Validate checks the structural rules every question must satisfy.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: question %d has an empty prompt", ErrInvalidQuestion, q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: question %d needs at least two options", ErrInvalidQuestion, q.ID)
	}
	if q.Answer != nil && (*q.Answer < 0 || *q.Answer >= len(q.Options)) {
		return fmt.Errorf("%w: question %d answer %d out of range", ErrInvalidQuestion, q.ID, *q.Answer)
	}
	return nil
}

// Quiz is an ordered, immutable collection of questions.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Language  string     `json:"language,omitempty" yaml:"language,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// QuestionAt returns the question at position i.
func (q Quiz) QuestionAt(i int) (Question, error) {
	if i < 0 || i >= len(q.Questions) {
		return Question{}, fmt.Errorf("%w: index %d of %d", ErrQuestionNotFound, i, len(q.Questions))
	}
	return q.Questions[i], nil
}

// Count returns the number of questions.
func (q Quiz) Count() int {
	return len(q.Questions)
}

// Validate checks every question and that question ids are unique.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: quiz id is empty", ErrInvalidQuestion)
	}
	seen := make(map[int]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("quiz %s: %w", q.ID, err)
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: quiz %s repeats question id %d", ErrInvalidQuestion, q.ID, question.ID)
		}
		seen[question.ID] = struct{}{}
	}
	return nil
}

// Public strips answers so the quiz can be handed to clients before they submit.
func (q Quiz) Public() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Answer = nil
		out.Questions[i] = question
	}
	return out
}
