package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lingua-quiz-service/internal/domain"
)

// quizFile is the on-disk YAML layout:
//
//	quizzes:
//	  - id: slavic-etymology
//	    title: Slavic roots
//	    questions:
//	      - id: 1
//	        prompt: ...
//	        options: [Bakery, River]
//	        etymology: ...
//	        answer: 0
type quizFile struct {
	Quizzes []domain.Quiz `yaml:"quizzes"`
}

// LoadQuizFile reads and validates a YAML quiz catalog.
func LoadQuizFile(path string) (map[string]domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var file quizFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse quiz file: %w", err)
	}
	quizzes := make(map[string]domain.Quiz, len(file.Quizzes))
	for _, quiz := range file.Quizzes {
		if err := quiz.Validate(); err != nil {
			return nil, err
		}
		if _, dup := quizzes[quiz.ID]; dup {
			return nil, fmt.Errorf("%w: quiz %s defined twice", domain.ErrInvalidQuestion, quiz.ID)
		}
		quizzes[quiz.ID] = quiz
	}
	return quizzes, nil
}

// FallbackLoader tries each loader in order and returns the first hit.
type FallbackLoader []QuizLoader

func (f FallbackLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	for _, loader := range f {
		quiz, err := loader.LoadQuiz(ctx, quizID)
		if err == nil {
			return quiz, nil
		}
		if !errors.Is(err, domain.ErrQuizNotFound) {
			return domain.Quiz{}, err
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}
