package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/quiz"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const quizHelp = "↑/↓ option  space select  enter submit  c finish  r retry  esc leave"

type quizScreen struct {
	s    *quiz.Session
	test tgmini.Test
	bar  progress.Model

	cursor     int
	questionID int
}

func newQuizScreen(s *quiz.Session, test tgmini.Test, width int) *quizScreen {
	return &quizScreen{
		s:    s,
		test: test,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(max(min(width-4, 60), 10))),
	}
}

func (q *quizScreen) Init() tea.Cmd {
	return q.s.ResumeOrStart()
}

func (q *quizScreen) Close() {
	q.s.Close()
}

func (q *quizScreen) Update(msg tea.Msg) tea.Cmd {
	cmd := q.s.Update(msg)
	if cur, ok := q.s.Question(); ok && cur.QuestionID != q.questionID {
		q.questionID = cur.QuestionID
		q.cursor = 0
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cmd
	}
	cur, hasQuestion := q.s.Question()
	switch key.String() {
	case "up", "k":
		q.cursor = max(q.cursor-1, 0)
	case "down", "j":
		if hasQuestion {
			q.cursor = min(q.cursor+1, len(cur.Options)-1)
		}
	case " ":
		if hasQuestion && q.cursor < len(cur.Options) {
			q.s.SelectOption(cur.Options[q.cursor].OptionID)
		}
	case "enter":
		if q.s.State() == quiz.AllAnswered {
			return tea.Batch(cmd, q.s.CompleteTest())
		}
		return tea.Batch(cmd, q.s.SubmitAnswer())
	case "c":
		return tea.Batch(cmd, q.s.CompleteTest())
	case "r":
		switch q.s.State() {
		case quiz.NotStarted:
			return tea.Batch(cmd, q.s.ResumeOrStart())
		case quiz.InProgress:
			return tea.Batch(cmd, q.s.RefreshProgress(true))
		default:
			return tea.Batch(cmd, q.s.RefreshProgress(false))
		}
	}
	return cmd
}

func (q *quizScreen) View(width int, loading string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(truncate(q.test.Title, width-12)))
	sb.WriteString("  ")
	remaining := quiz.FormatRemaining(q.s.Remaining())
	if q.s.Remaining() <= 60 && q.s.State() != quiz.NotStarted {
		remaining = overdueStyle.Render(remaining)
	}
	sb.WriteString(remaining)
	sb.WriteString("\n")

	if p, ok := q.s.Progress(); ok {
		sb.WriteString(q.bar.ViewAs(p.ProgressPercentage / 100))
		sb.WriteString(fmt.Sprintf("  %d/%d answered\n", p.AnsweredQuestions, p.TotalQuestions))
	}
	sb.WriteRune('\n')

	switch q.s.State() {
	case quiz.NotStarted:
		sb.WriteString("Starting test " + loading)
	case quiz.InProgress:
		sb.WriteString("Loading question " + loading)
	case quiz.AllAnswered:
		sb.WriteString(activeStyle.Render("All questions answered."))
		sb.WriteString("\nPress enter to finish the test.")
		if q.s.Completing() {
			sb.WriteString(" " + loading)
		}
	case quiz.Finished:
		sb.WriteString("Test finished " + loading)
	case quiz.AwaitingAnswer:
		sb.WriteString(q.renderQuestion(width))
		if q.s.Submitting() {
			sb.WriteString("\n" + loading)
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(faintStyle.Render(quizHelp))
	return sb.String()
}

func (q *quizScreen) renderQuestion(width int) string {
	cur, ok := q.s.Question()
	if !ok {
		return ""
	}
	var sb strings.Builder
	kind := "choose one"
	if cur.QuestionType == tgmini.MultipleChoice {
		kind = "choose all that apply"
	}
	sb.WriteString(cur.QuestionText)
	sb.WriteString(faintStyle.Render(fmt.Sprintf("  (%d points, %s)", cur.Points, kind)))
	sb.WriteString("\n\n")
	for i, o := range cur.Options {
		mark := "( )"
		if cur.QuestionType == tgmini.MultipleChoice {
			mark = "[ ]"
		}
		if q.s.IsSelected(o.OptionID) {
			mark = strings.Replace(mark, " ", "x", 1)
		}
		text := truncate(mark+" "+o.OptionText, width-2)
		if i == q.cursor {
			text = cursorStyle.Render(text)
		}
		sb.WriteString(text)
		sb.WriteRune('\n')
	}
	if !q.s.CanSubmit() && !q.s.Completing() {
		sb.WriteString(faintStyle.Render("select an option to submit"))
	}
	return sb.String()
}
