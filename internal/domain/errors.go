package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question index outside the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionOutOfRange indicates a selected option index outside the current question.
	ErrOptionOutOfRange = errors.New("option out of range")
	// ErrInvalidTransition is returned for actions the current session state does not allow,
	// such as submitting without a selection or advancing before the reveal.
	ErrInvalidTransition = errors.New("invalid quiz transition")
	// ErrSessionFinished is returned for any action on a finished session.
	ErrSessionFinished = errors.New("quiz session finished")
	// ErrInvalidQuestion marks malformed quiz content.
	ErrInvalidQuestion = errors.New("invalid question")
)
