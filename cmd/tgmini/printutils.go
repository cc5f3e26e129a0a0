package main

import (
	"strings"

	"github.com/benjamonnguyen/tgmini/notify"
	"github.com/benjamonnguyen/tgmini/quiz"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
	dash        = '─'
)

var (
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	dragStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	hoverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Underline(true).Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	gateStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 2)

	toastStyles = map[notify.Variant]lipgloss.Style{
		notify.VariantDefault:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		notify.VariantSuccess:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		notify.VariantDestructive: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}

	scoreStyles = map[quiz.ScoreClass]lipgloss.Style{
		quiz.ScoreExcellent: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		quiz.ScoreGood:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		quiz.ScoreFair:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		quiz.ScorePoor:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}

	priorityColors = map[int]lipgloss.Color{
		5: lipgloss.Color("9"),
		4: lipgloss.Color("208"),
		3: lipgloss.Color("11"),
		2: lipgloss.Color("10"),
		1: lipgloss.Color("12"),
	}
)

func line(length int) string {
	var sb strings.Builder
	for range length {
		sb.WriteRune(dash)
	}
	return sb.String()
}

func colorize(color string, s string) string {
	return color + s + colorReset
}

// truncate cuts s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func renderToasts(toasts []notify.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		text := t.Title
		if t.Description != "" {
			text += ": " + t.Description
		}
		lines = append(lines, toastStyles[t.Variant].Render(truncate(text, width)))
	}
	return strings.Join(lines, "\n")
}

func authGate(width int) string {
	box := gateStyle.Render(titleStyle.Render("Authentication required") + "\n" +
		"Log in with your Telegram id to see this page.")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
