// Package tui renders the quiz screen in a terminal with Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

// Model drives one quiz session locally with the same transitions as the service.
type Model struct {
	content domain.Quiz
	state   quiz.State
	cursor  int
	summary *quiz.Summary
	notice  string
}

// NewModel starts a session on content.
func NewModel(content domain.Quiz) Model {
	return Model{
		content: content,
		state:   quiz.NewState("terminal", content.ID),
	}
}

// State exposes the current session state.
func (m Model) State() quiz.State { return m.state }

// Summary is set once the test is finished.
func (m Model) Summary() *quiz.Summary { return m.summary }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	if m.summary != nil {
		return m, tea.Quit
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "f":
		state, summary := quiz.Finish(m.state, m.content)
		m.state = state
		m.summary = &summary
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
		return m, nil
	case " ":
		return m.choose(m.cursor), nil
	case "enter":
		if m.state.Revealed {
			return m.apply(quiz.Advance), nil
		}
		if !m.state.HasSelection() {
			m.notice = "select an option first"
			return m, nil
		}
		return m.apply(quiz.Submit), nil
	}

	if r := key.Runes; len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
		return m.choose(int(r[0] - '1')), nil
	}
	return m, nil
}

func (m Model) choose(option int) Model {
	next, err := quiz.SelectOption(m.state, m.content, option)
	if err != nil {
		m.notice = describe(err)
		return m
	}
	m.state = next
	m.cursor = option
	return m
}

func (m Model) apply(fn func(quiz.State, quiz.QuestionSource) (quiz.State, error)) Model {
	next, err := fn(m.state, m.content)
	if err != nil {
		m.notice = describe(err)
		return m
	}
	if next.CurrentIndex != m.state.CurrentIndex {
		m.cursor = 0
	}
	m.state = next
	return m
}

func (m Model) optionCount() int {
	q, err := m.content.QuestionAt(m.state.CurrentIndex)
	if err != nil {
		return 0
	}
	return len(q.Options)
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	etymologyStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lingua"))
	b.WriteString("\n\n")

	if m.summary != nil {
		fmt.Fprintf(&b, "Test finished: %d of %d answered, %d correct.\n", m.summary.Answered, m.summary.Total, m.summary.Correct)
		b.WriteString(mutedStyle.Render("press any key to exit"))
		return b.String()
	}

	screen := quiz.Render(m.state, m.content)
	b.WriteString(headingStyle.Render(screen.Heading))
	b.WriteString("\n")
	if screen.Phase == quiz.PhaseCompleted {
		fmt.Fprintf(&b, "Score: %d of %d\n\n", screen.Score, screen.Total)
		b.WriteString(mutedStyle.Render("f finish • q quit"))
		return b.String()
	}

	b.WriteString(screen.Prompt)
	b.WriteString("\n\n")
	for _, opt := range screen.Options {
		pointer := "  "
		if opt.Index == m.cursor && !screen.ShowNext {
			pointer = cursorStyle.Render("> ")
		}
		mark := "( )"
		if opt.Checked {
			mark = "(•)"
		}
		fmt.Fprintf(&b, "%s%s %d. %s\n", pointer, mark, opt.Index+1, opt.Text)
	}
	b.WriteString("\n")

	if screen.Etymology != "" {
		if screen.Correct != nil {
			if *screen.Correct {
				b.WriteString(correctStyle.Render("Correct!"))
			} else {
				b.WriteString(wrongStyle.Render("Not quite."))
			}
			b.WriteString("\n")
		}
		b.WriteString(etymologyStyle.Render("Etymology\n" + screen.Etymology))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter next • f finish • q quit"))
	} else if screen.SubmitEnabled {
		b.WriteString(mutedStyle.Render("enter submit • 1-9 select • f finish • q quit"))
	} else {
		b.WriteString(mutedStyle.Render("1-9 or space select • f finish • q quit"))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(wrongStyle.Render(m.notice))
	}
	return b.String()
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return "no such option"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "not available right now"
	default:
		return err.Error()
	}
}
