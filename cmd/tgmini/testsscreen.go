package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/quiz"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const testsHelp = "↑/↓ select  enter start  s subject  / search  r reload"

type testsScreen struct {
	all      []tgmini.Test
	subjects []string
	subject  string

	search    textinput.Model
	searching bool
	cursor    int
	loading   bool
}

func newTestsScreen() *testsScreen {
	search := textinput.New()
	search.Placeholder = "search tests"
	search.Prompt = "/ "
	search.CharLimit = 100
	return &testsScreen{
		search: search,
	}
}

func (s *testsScreen) visible() []tgmini.Test {
	return quiz.FilterTests(s.all, s.subject, s.search.Value())
}

func (s *testsScreen) capturesKeys() bool {
	return s.searching
}

func (s *testsScreen) loaded(msg TestsLoadedMsg) {
	s.loading = false
	if msg.err != nil {
		return
	}
	s.all = msg.tests
	s.subjects = msg.subjects
	if len(s.subjects) == 0 {
		s.subjects = quiz.Subjects(msg.tests)
	}
	s.cursor = 0
}

// Update returns the test to start when one is chosen.
func (s *testsScreen) Update(msg tea.KeyMsg) (*tgmini.Test, tea.Cmd) {
	if s.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			s.searching = false
			s.search.Blur()
			if msg.Type == tea.KeyEsc {
				s.search.Reset()
			}
			s.cursor = 0
			return nil, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.cursor = 0
		return nil, cmd
	}

	visible := s.visible()
	switch msg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(visible)-1, 0))
	case "s":
		s.subject = nextCategory(s.subjects, s.subject)
		s.cursor = 0
	case "/":
		s.searching = true
		return nil, s.search.Focus()
	case "enter":
		if s.cursor < len(visible) {
			t := visible[s.cursor]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *testsScreen) View(width int, loading string) string {
	var sb strings.Builder
	header := "Tests"
	if s.subject != "" {
		header += " · " + s.subject
	}
	sb.WriteString(titleStyle.Render(header))
	if s.loading {
		sb.WriteString(" " + loading)
	}
	sb.WriteRune('\n')
	if s.searching || s.search.Value() != "" {
		sb.WriteString(s.search.View())
		sb.WriteRune('\n')
	}
	sb.WriteRune('\n')

	visible := s.visible()
	if len(visible) == 0 && !s.loading {
		sb.WriteString(faintStyle.Render("no tests match"))
		sb.WriteRune('\n')
	}
	for i, t := range visible {
		title := truncate(t.Title, width-2)
		if i == s.cursor {
			title = cursorStyle.Render(title)
		}
		sb.WriteString(title)
		sb.WriteRune('\n')
		meta := fmt.Sprintf("%s · %d min · %d questions · %d points", t.Subject, t.DurationMinutes, t.QuestionCount, t.TotalPoints)
		sb.WriteString(faintStyle.Render(truncate(meta, width-2)))
		sb.WriteRune('\n')
	}
	sb.WriteRune('\n')
	sb.WriteString(faintStyle.Render(testsHelp))
	return sb.String()
}
