package quiz

import "fmt"

// OptionView is one answer choice as shown on screen.
type OptionView struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Screen is what a client renders after every transition.
type Screen struct {
	SessionID      string       `json:"sessionId"`
	QuizID         string       `json:"quizId"`
	Phase          Phase        `json:"phase"`
	Heading        string       `json:"heading"`
	QuestionNumber int          `json:"questionNumber"`
	Total          int          `json:"total"`
	Prompt         string       `json:"prompt,omitempty"`
	Options        []OptionView `json:"options,omitempty"`
	SelectedOption *int         `json:"selectedOption"`
	SubmitEnabled  bool         `json:"submitEnabled"`
	ShowSubmit     bool         `json:"showSubmit"`
	ShowNext       bool         `json:"showNext"`
	Etymology      string       `json:"etymology,omitempty"`
	Correct        *bool        `json:"correct,omitempty"`
	Answered       int          `json:"answered"`
	Score          int          `json:"score"`
}

// Render builds the Screen for s. It never fails: a missing question renders
// as a completed screen.
func Render(s State, src QuestionSource) Screen {
	total := src.Count()
	screen := Screen{
		SessionID:      s.ID,
		QuizID:         s.QuizID,
		Phase:          s.Phase(total),
		QuestionNumber: s.CurrentIndex + 1,
		Total:          total,
		Answered:       s.Answered,
		Score:          s.Correct,
	}
	if s.HasSelection() {
		selected := s.SelectedOption
		screen.SelectedOption = &selected
	}

	switch screen.Phase {
	case PhaseFinished:
		screen.Heading = "Test finished"
		return screen
	case PhaseCompleted:
		screen.Heading = "All questions answered"
		return screen
	}

	question, err := src.QuestionAt(s.CurrentIndex)
	if err != nil {
		screen.Phase = PhaseCompleted
		screen.Heading = "All questions answered"
		return screen
	}

	screen.Heading = fmt.Sprintf("Question %d", screen.QuestionNumber)
	screen.Prompt = question.Prompt
	screen.Options = make([]OptionView, len(question.Options))
	for i, text := range question.Options {
		screen.Options[i] = OptionView{Index: i, Text: text, Checked: s.SelectedOption == i}
	}

	if s.Revealed {
		screen.ShowNext = true
		screen.Etymology = question.EtymologyNote
		if question.Graded() {
			correct := question.IsCorrect(s.SelectedOption)
			screen.Correct = &correct
		}
		return screen
	}
	screen.ShowSubmit = true
	screen.SubmitEnabled = s.HasSelection()
	return screen
}
