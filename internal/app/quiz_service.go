package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, state quiz.State) error
	Load(ctx context.Context, sessionID string) (quiz.State, error)
	Delete(ctx context.Context, sessionID string) error
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// EventPublisher receives session lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

const (
	EventSessionStarted  = "quiz.session.started"
	EventAnswerRevealed  = "quiz.answer.revealed"
	EventSessionAdvanced = "quiz.session.advanced"
	EventSessionFinished = "quiz.session.finished"
)

// RevealEvent is published after a successful submit.
type RevealEvent struct {
	SessionID  string `json:"sessionId"`
	QuizID     string `json:"quizId"`
	QuestionID int    `json:"questionId"`
	Option     int    `json:"option"`
	Correct    *bool  `json:"correct,omitempty"`
}

// QuizService contains the quiz screen use cases.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
	newID    func() string

	locks sync.Map // session id -> *sync.Mutex
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithEvents sets the event publisher.
func WithEvents(p EventPublisher) Option {
	return func(s *QuizService) { s.events = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *QuizService) { s.log = l }
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithIDGenerator replaces the uuid session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *QuizService) { s.newID = gen }
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, opts ...Option) *QuizService {
	s := &QuizService{
		sessions: store,
		quizzes:  quizzes,
		events:   nopPublisher{},
		log:      zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quiz returns quiz content with answers removed.
func (s *QuizService) Quiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	return q.Public(), nil
}

// Start opens a new session on the first question of quizID.
func (s *QuizService) Start(ctx context.Context, quizID string) (quiz.Screen, error) {
	// Users cannot start unknown quizzes.
	content, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return quiz.Screen{}, err
	}

	now := s.now()
	state := quiz.NewState(s.newID(), quizID)
	state.StartedAt = now
	state.UpdatedAt = now
	if err := s.sessions.Save(ctx, state); err != nil {
		return quiz.Screen{}, err
	}

	s.log.Info("quiz session started", zap.String("session", state.ID), zap.String("quiz", quizID))
	screen := quiz.Render(state, content)
	s.publish(ctx, EventSessionStarted, screen)
	return screen, nil
}

// Screen renders the current state of a session.
func (s *QuizService) Screen(ctx context.Context, sessionID string) (quiz.Screen, error) {
	state, content, err := s.load(ctx, sessionID)
	if err != nil {
		return quiz.Screen{}, err
	}
	return quiz.Render(state, content), nil
}

// SelectOption chooses an answer option on the current question.
func (s *QuizService) SelectOption(ctx context.Context, sessionID string, option int) (quiz.Screen, error) {
	state, content, err := s.apply(ctx, sessionID, func(state quiz.State, src quiz.QuestionSource) (quiz.State, error) {
		return quiz.SelectOption(state, src, option)
	})
	return render(state, content), err
}

// Submit reveals the etymology for the selected option.
func (s *QuizService) Submit(ctx context.Context, sessionID string) (quiz.Screen, error) {
	state, content, err := s.apply(ctx, sessionID, quiz.Submit)
	screen := render(state, content)
	if err != nil {
		return screen, err
	}
	event := RevealEvent{
		SessionID: state.ID,
		QuizID:    state.QuizID,
		Option:    state.SelectedOption,
		Correct:   screen.Correct,
	}
	if q, err := content.QuestionAt(state.CurrentIndex); err == nil {
		event.QuestionID = q.ID
	}
	s.publish(ctx, EventAnswerRevealed, event)
	return screen, nil
}

// Advance moves a revealed session to the next question.
func (s *QuizService) Advance(ctx context.Context, sessionID string) (quiz.Screen, error) {
	state, content, err := s.apply(ctx, sessionID, quiz.Advance)
	screen := render(state, content)
	if err != nil {
		return screen, err
	}
	s.publish(ctx, EventSessionAdvanced, screen)
	return screen, nil
}

// Finish ends a session, drops it from the store and returns its summary.
func (s *QuizService) Finish(ctx context.Context, sessionID string) (quiz.Summary, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, content, err := s.load(ctx, sessionID)
	if err != nil {
		return quiz.Summary{}, err
	}
	_, summary := quiz.Finish(state, content)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return quiz.Summary{}, err
	}
	s.locks.Delete(sessionID)

	s.log.Info("quiz session finished",
		zap.String("session", sessionID),
		zap.Int("answered", summary.Answered),
		zap.Int("correct", summary.Correct),
	)
	s.publish(ctx, EventSessionFinished, summary)
	return summary, nil
}

// apply runs one transition with the session lock held so each session has a single writer.
// On a rejected transition the unchanged state is returned along with the error.
func (s *QuizService) apply(ctx context.Context, sessionID string, fn func(quiz.State, quiz.QuestionSource) (quiz.State, error)) (quiz.State, domain.Quiz, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, content, err := s.load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.locks.Delete(sessionID)
		}
		return quiz.State{}, domain.Quiz{}, err
	}
	next, err := fn(state, content)
	if err != nil {
		s.log.Debug("transition rejected", zap.String("session", sessionID), zap.Error(err))
		return state, content, err
	}
	next.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, next); err != nil {
		return state, content, err
	}
	return next, content, nil
}

func (s *QuizService) load(ctx context.Context, sessionID string) (quiz.State, domain.Quiz, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return quiz.State{}, domain.Quiz{}, err
	}
	content, err := s.quizzes.GetQuiz(ctx, state.QuizID)
	if err != nil {
		return quiz.State{}, domain.Quiz{}, err
	}
	return state, content, nil
}

// render leaves the screen empty when the session could not be loaded.
func render(state quiz.State, content domain.Quiz) quiz.Screen {
	if state.ID == "" {
		return quiz.Screen{}
	}
	return quiz.Render(state, content)
}

func (s *QuizService) lock(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *QuizService) publish(ctx context.Context, eventType string, payload any) {
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		s.log.Warn("publish event failed", zap.String("type", eventType), zap.Error(err))
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }
