package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/quiz"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	resultHelp  = "↑/↓ scroll  esc back"
	historyHelp = "↑/↓ select  enter details  r reload"
)

type resultScreen struct {
	vp     viewport.Model
	result *tgmini.TestResult
}

func newResultScreen(w, h int) *resultScreen {
	return &resultScreen{
		vp: viewport.New(w, max(h-4, 1)),
	}
}

func (s *resultScreen) resize(w, h int) {
	s.vp.Width = w
	s.vp.Height = max(h-4, 1)
}

func (s *resultScreen) set(r tgmini.TestResult, timeFormat string) {
	s.result = &r
	s.vp.SetContent(renderResult(r, timeFormat, s.vp.Width))
	s.vp.GotoTop()
}

func (s *resultScreen) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *resultScreen) View(loading string) string {
	if s.result == nil {
		return "Loading result " + loading
	}
	return s.vp.View() + "\n\n" + faintStyle.Render(resultHelp)
}

func renderResult(r tgmini.TestResult, timeFormat string, width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(r.TestTitle))
	sb.WriteString("\n\n")

	style := scoreStyles[quiz.ClassifyScore(r.ScorePercentage)]
	sb.WriteString(style.Render(fmt.Sprintf("%.1f / %.1f points (%.0f%%)", r.Score, r.MaxScore, r.ScorePercentage)))
	sb.WriteRune('\n')
	if !r.StartedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("started %s", r.StartedAt.Format(timeFormat+" 15:04")))
		if !r.FinishedAt.IsZero() {
			sb.WriteString(fmt.Sprintf(" · took %s", quiz.FormatDuration(r.Duration())))
		}
		sb.WriteRune('\n')
	}
	sb.WriteString(faintStyle.Render(line(min(width, 60))))
	sb.WriteRune('\n')

	for i, q := range r.QuestionResults {
		mark := overdueStyle.Render("✗")
		switch {
		case q.IsCorrect:
			mark = scoreStyles[quiz.ScoreExcellent].Render("✓")
		case !q.IsAnswered:
			mark = faintStyle.Render("–")
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s ", mark, i+1, q.QuestionText))
		sb.WriteString(faintStyle.Render(fmt.Sprintf("(%.1f/%d)", q.EarnedPoints, q.Points)))
		sb.WriteRune('\n')
		for _, o := range q.Options {
			prefix := "   "
			for _, id := range q.SelectedOptionIDs {
				if id == o.OptionID {
					prefix = " » "
				}
			}
			text := truncate(prefix+o.OptionText, width)
			if o.IsCorrect {
				text = scoreStyles[quiz.ScoreExcellent].Render(text)
			}
			sb.WriteString(text)
			sb.WriteRune('\n')
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

type historyScreen struct {
	results []tgmini.TestResult
	cursor  int
	loading bool
}

// Update returns the attempt to open when one is chosen.
func (s *historyScreen) Update(msg tea.KeyMsg) *tgmini.TestResult {
	switch msg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(s.results)-1, 0))
	case "enter":
		if s.cursor < len(s.results) {
			r := s.results[s.cursor]
			return &r
		}
	}
	return nil
}

func (s *historyScreen) View(width int, timeFormat, loading string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("History"))
	if s.loading {
		sb.WriteString(" " + loading)
	}
	sb.WriteString("\n\n")
	if len(s.results) == 0 && !s.loading {
		sb.WriteString(faintStyle.Render("no finished tests yet"))
		sb.WriteRune('\n')
	}
	for i, r := range s.results {
		title := truncate(r.TestTitle, width/2)
		if i == s.cursor {
			title = cursorStyle.Render(title)
		}
		score := scoreStyles[quiz.ClassifyScore(r.ScorePercentage)].Render(fmt.Sprintf("%.0f%%", r.ScorePercentage))
		when := ""
		if !r.FinishedAt.IsZero() {
			when = faintStyle.Render(r.FinishedAt.Format(timeFormat))
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n", title, score, when))
	}
	sb.WriteRune('\n')
	sb.WriteString(faintStyle.Render(historyHelp))
	return sb.String()
}
