package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDue
)

var fieldLabels = [...]string{"Title", "Description", "Category", "Priority (1-5)", "Due (YYYY-MM-DD)"}

type taskForm struct {
	inputs    []textinput.Model
	focus     int
	status    tgmini.TaskStatus
	important bool
}

func newTaskForm(status tgmini.TaskStatus, now time.Time) *taskForm {
	defaults := tgmini.NewTaskInput("", status, now)
	f := &taskForm{
		status: status,
		inputs: make([]textinput.Model, len(fieldLabels)),
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 255
		f.inputs[i] = ti
	}
	f.inputs[fieldDescription].CharLimit = 2000
	f.inputs[fieldCategory].SetValue(defaults.Category)
	f.inputs[fieldPriority].SetValue(strconv.Itoa(defaults.Priority))
	f.inputs[fieldPriority].CharLimit = 1
	f.inputs[fieldDue].SetValue(strings.TrimSuffix(defaults.DueDate, "T00:00:00"))
	f.inputs[fieldTitle].Focus()
	return f
}

// input converts the form into a TaskInput. Field constraints are checked
// later by tgmini.ValidateTaskInput.
func (f *taskForm) input() (tgmini.TaskInput, error) {
	in := tgmini.TaskInput{
		Title:       f.inputs[fieldTitle].Value(),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Category:    f.inputs[fieldCategory].Value(),
		Status:      f.status,
		IsImportant: f.important,
	}

	p, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPriority].Value()))
	if err != nil {
		return in, fmt.Errorf("priority must be a number from 1 to 5")
	}
	in.Priority = p

	due := strings.TrimSpace(f.inputs[fieldDue].Value())
	if len(due) == len(time.DateOnly) {
		due += "T00:00:00"
	}
	in.DueDate = due
	return in, nil
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Update reports submit when the user confirms the form.
func (f *taskForm) Update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return false, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return false, f.setFocus(f.focus - 1)
		case "ctrl+t":
			f.important = !f.important
			return false, nil
		case "ctrl+s":
			return true, nil
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return true, nil
			}
			return false, f.setFocus(f.focus + 1)
		}
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *taskForm) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("New task in %s", statusLabel(f.status))))
	sb.WriteString("\n\n")
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = activeStyle.Render(label)
		}
		sb.WriteString(label)
		sb.WriteRune('\n')
		sb.WriteString(in.View())
		sb.WriteString("\n\n")
	}
	mark := "[ ]"
	if f.important {
		mark = "[x]"
	}
	sb.WriteString(mark + " important (ctrl+t)\n\n")
	sb.WriteString(faintStyle.Render("(tab: next field, ctrl+s: save, esc: cancel)"))
	return sb.String()
}

func statusLabel(s tgmini.TaskStatus) string {
	switch s {
	case tgmini.StatusCreated:
		return "To do"
	case tgmini.StatusInProgress:
		return "In progress"
	case tgmini.StatusCompleted:
		return "Done"
	default:
		return string(s)
	}
}
