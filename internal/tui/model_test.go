package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lingua-quiz-service/internal/catalog"
	"lingua-quiz-service/internal/quiz"
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestSelectSubmitAdvance(t *testing.T) {
	m := NewModel(catalog.Peka())
	if !strings.Contains(m.View(), "Question 1") {
		t.Fatalf("expected heading in view:\n%s", m.View())
	}

	m = press(t, m, runes("3"))
	if m.State().SelectedOption != 2 {
		t.Fatalf("expected option 2 selected, got %d", m.State().SelectedOption)
	}

	m = press(t, m, enter)
	if !m.State().Revealed {
		t.Fatalf("expected revealed state")
	}
	view := m.View()
	if !strings.Contains(view, "Proto-Slavic") || !strings.Contains(view, "Not quite.") {
		t.Fatalf("expected etymology and verdict:\n%s", view)
	}

	// Selecting after the reveal is refused.
	m = press(t, m, runes("1"))
	if m.State().SelectedOption != 2 {
		t.Fatalf("selection changed after reveal")
	}

	m = press(t, m, enter)
	if m.State().CurrentIndex != 1 || m.State().Revealed || m.State().HasSelection() {
		t.Fatalf("unexpected state after advance %+v", m.State())
	}
	if !strings.Contains(m.View(), "All questions answered") {
		t.Fatalf("expected completed view:\n%s", m.View())
	}
}

func TestEnterWithoutSelectionKeepsState(t *testing.T) {
	m := NewModel(catalog.Peka())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, enter)
	if m.State().Revealed || m.State().SelectedOption != quiz.NoSelection || m.State().Answered != 0 {
		t.Fatalf("submit without selection changed state %+v", m.State())
	}
	if !strings.Contains(m.View(), "select an option first") {
		t.Fatalf("expected notice:\n%s", m.View())
	}
}

func TestSpaceSelectsCursorOption(t *testing.T) {
	m := NewModel(catalog.Peka())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, enter)
	if !m.State().Revealed || m.State().SelectedOption != 0 || m.State().Correct != 1 {
		t.Fatalf("expected correct reveal of option 0, got %+v", m.State())
	}
}

func TestOutOfRangeOptionShowsNotice(t *testing.T) {
	m := NewModel(catalog.Peka())
	m = press(t, m, runes("9"))
	if m.State().HasSelection() {
		t.Fatalf("out of range key must not select")
	}
	if !strings.Contains(m.View(), "no such option") {
		t.Fatalf("expected notice:\n%s", m.View())
	}
}

func TestFinishShowsSummaryThenQuits(t *testing.T) {
	m := NewModel(catalog.Builtin()[catalog.DefaultQuizID])
	m = press(t, m, runes("1"), enter, runes("f"))
	if m.Summary() == nil || m.Summary().Correct != 1 || m.Summary().Total != 5 {
		t.Fatalf("unexpected summary %+v", m.Summary())
	}
	if m.State().Phase(5) != quiz.PhaseFinished {
		t.Fatalf("expected finished phase")
	}
	_, cmd := m.Update(runes("x"))
	if cmd == nil {
		t.Fatalf("expected quit command after summary")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
