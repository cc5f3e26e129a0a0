package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/board"
	"github.com/benjamonnguyen/tgmini/notify"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const boardHelp = `←/→ column  ↑/↓ task  space grab/drop  esc cancel  n new  x delete
/ search  c category  p priority  r reload  (mouse: drag a task onto a column)`

// Layout rows within the screen. Row 0 holds the tabs, row 1 the filter line.
const (
	boardHeaderY   = 2
	boardCardsY    = 3
	cardHeight     = 2
	touchThreshold = 1
)

type boardScreen struct {
	b       *board.Board
	pointer *board.PointerAdapter
	touch   *board.TouchAdapter
	toasts  *notify.Center

	search    textinput.Model
	searching bool
	form      *taskForm
	filter    board.Filter

	col, row     int
	offset       int
	scrollLocked bool
	w, h         int
}

func newBoardScreen(b *board.Board, toasts *notify.Center) *boardScreen {
	search := textinput.New()
	search.Placeholder = "search title or description"
	search.Prompt = "/ "
	search.CharLimit = 100
	return &boardScreen{
		b:       b,
		pointer: board.NewPointerAdapter(b),
		touch:   board.NewTouchAdapter(b, touchThreshold),
		toasts:  toasts,
		search:  search,
	}
}

func (s *boardScreen) Init() tea.Cmd {
	return tea.Batch(s.b.LoadTasks(), s.b.LoadStatistics())
}

func (s *boardScreen) Close() {
	s.b.Close()
}

func (s *boardScreen) colWidth() int {
	return max(s.w/len(tgmini.Statuses), 10)
}

func (s *boardScreen) visibleCards() int {
	return max((s.h-boardCardsY-4)/cardHeight, 1)
}

func (s *boardScreen) resize(w, h int) {
	s.w, s.h = w, h
	colW := s.colWidth()
	for i, st := range tgmini.Statuses {
		s.touch.SetBucketBounds(st, board.Rect{
			X: i * colW,
			Y: boardHeaderY,
			W: colW - 1,
			H: max(h-boardHeaderY, 0),
		})
	}
	s.search.Width = w - 4
}

func (s *boardScreen) view() board.Buckets {
	return s.b.View(s.filter)
}

func (s *boardScreen) selected() (tgmini.Task, bool) {
	tasks := s.view()[tgmini.Statuses[s.col]]
	if s.row < 0 || s.row >= len(tasks) {
		return tgmini.Task{}, false
	}
	return tasks[s.row], true
}

// taskAt maps a screen cell to the task card drawn there.
func (s *boardScreen) taskAt(x, y int) (tgmini.Task, tgmini.TaskStatus, bool) {
	if y < boardCardsY {
		return tgmini.Task{}, "", false
	}
	col := x / s.colWidth()
	if col < 0 || col >= len(tgmini.Statuses) {
		return tgmini.Task{}, "", false
	}
	status := tgmini.Statuses[col]
	idx := (y-boardCardsY)/cardHeight + s.offset
	tasks := s.view()[status]
	if idx >= len(tasks) {
		return tgmini.Task{}, "", false
	}
	return tasks[idx], status, true
}

func (s *boardScreen) clampCursor() {
	s.col = min(max(s.col, 0), len(tgmini.Statuses)-1)
	n := len(s.view()[tgmini.Statuses[s.col]])
	s.row = min(max(s.row, 0), max(n-1, 0))
	if s.row < s.offset {
		s.offset = s.row
	}
	if s.row >= s.offset+s.visibleCards() {
		s.offset = s.row - s.visibleCards() + 1
	}
}

// capturesKeys reports whether typed keys belong to an input on this screen.
func (s *boardScreen) capturesKeys() bool {
	return s.searching || s.form != nil
}

func (s *boardScreen) Update(msg tea.Msg) tea.Cmd {
	cmd := s.b.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return tea.Batch(cmd, s.handleKey(msg))
	case tea.MouseMsg:
		return tea.Batch(cmd, s.handleMouse(msg))
	}
	s.clampCursor()
	return cmd
}

func (s *boardScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.form != nil {
		if msg.Type == tea.KeyEsc {
			s.form = nil
			return nil
		}
		submit, cmd := s.form.Update(msg)
		if !submit {
			return cmd
		}
		in, err := s.form.input()
		if err != nil {
			return s.toasts.Push(notify.VariantDestructive, "Invalid task", err.Error())
		}
		s.form = nil
		return s.b.CreateTask(in)
	}

	if s.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			s.searching = false
			s.search.Blur()
			if msg.Type == tea.KeyEsc {
				s.search.Reset()
			}
			s.filter.Search = s.search.Value()
			s.clampCursor()
			return nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.filter.Search = s.search.Value()
		s.clampCursor()
		return cmd
	}

	drag, dragging := s.b.Drag()
	switch msg.String() {
	case "left", "h":
		s.col--
		s.clampCursor()
		if dragging {
			s.pointer.DragOver(tgmini.Statuses[s.col])
		}
	case "right", "l":
		s.col++
		s.clampCursor()
		if dragging {
			s.pointer.DragOver(tgmini.Statuses[s.col])
		}
	case "up", "k":
		s.row--
		s.clampCursor()
	case "down", "j":
		s.row++
		s.clampCursor()
	case " ", "enter":
		if dragging {
			target := tgmini.Statuses[s.col]
			s.b.DragOverBucket(target)
			cmd := s.pointer.Drop(target)
			if target != drag.Source {
				s.row = len(s.view()[target]) - 1
			}
			s.clampCursor()
			return cmd
		}
		if t, ok := s.selected(); ok {
			s.pointer.DragStart(t, t.Status)
			s.pointer.DragOver(t.Status)
		}
	case "esc":
		if dragging {
			s.pointer.DragLeave()
			s.pointer.DragEnd()
		}
	case "n":
		s.form = newTaskForm(tgmini.Statuses[s.col], time.Now())
		return textinput.Blink
	case "x":
		if t, ok := s.selected(); ok && !dragging {
			return s.b.DeleteTask(t.ID)
		}
	case "/":
		s.searching = true
		return s.search.Focus()
	case "c":
		s.filter.Category = nextCategory(s.b.Categories(), s.filter.Category)
		s.clampCursor()
	case "p":
		s.filter.Priority = (s.filter.Priority + 1) % 6
		s.clampCursor()
	case "r":
		return tea.Batch(s.b.LoadTasks(), s.b.LoadStatistics())
	}
	return nil
}

func (s *boardScreen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if s.form != nil {
		return nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if t, status, ok := s.taskAt(msg.X, msg.Y); ok {
			s.touch.TouchStart(t, status, msg.X, msg.Y)
			s.scrollLocked = false
		}
	case msg.Action == tea.MouseActionMotion:
		if s.touch.Tracking() {
			s.scrollLocked = s.touch.TouchMove(msg.X, msg.Y)
		}
	case msg.Action == tea.MouseActionRelease:
		s.scrollLocked = false
		if !s.touch.Tracking() {
			return nil
		}
		cmd := s.touch.TouchEnd(msg.X, msg.Y)
		s.clampCursor()
		return cmd
	case msg.Button == tea.MouseButtonWheelUp && !s.scrollLocked:
		s.offset = max(s.offset-1, 0)
	case msg.Button == tea.MouseButtonWheelDown && !s.scrollLocked:
		s.offset++
	}
	return nil
}

func nextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return ""
	}
	for i, c := range categories {
		if c == current {
			if i == len(categories)-1 {
				return ""
			}
			return categories[i+1]
		}
	}
	return categories[0]
}

func (s *boardScreen) View(loading string) string {
	if s.form != nil {
		return s.form.View()
	}

	var sb strings.Builder
	sb.WriteString(s.renderFilterLine(loading))
	sb.WriteRune('\n')

	colW := s.colWidth()
	view := s.view()
	drag, dragging := s.b.Drag()
	hover := s.b.Hover()
	now := time.Now()

	cols := make([]string, 0, len(tgmini.Statuses))
	for i, st := range tgmini.Statuses {
		tasks := view[st]
		header := fmt.Sprintf("%s (%d)", statusLabel(st), len(tasks))
		switch {
		case dragging && st == hover:
			header = hoverStyle.Render(truncate("▶ "+header, colW-1))
		case i == s.col:
			header = activeStyle.Render(truncate(header, colW-1))
		default:
			header = titleStyle.Render(truncate(header, colW-1))
		}

		lines := []string{header}
		end := min(s.offset+s.visibleCards(), len(tasks))
		for j := s.offset; j < end; j++ {
			title, meta := renderCard(tasks[j], colW-1, now)
			switch {
			case dragging && tasks[j].ID == drag.Task.ID:
				title = dragStyle.Render(title)
			case i == s.col && j == s.row:
				title = cursorStyle.Render(title)
			}
			lines = append(lines, title, meta)
		}
		if len(tasks) == 0 {
			lines = append(lines, faintStyle.Render("no tasks"))
		}
		cols = append(cols, lipgloss.NewStyle().Width(colW).Render(strings.Join(lines, "\n")))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	sb.WriteString("\n\n")
	sb.WriteString(faintStyle.Render(boardHelp))
	return sb.String()
}

func (s *boardScreen) renderFilterLine(loading string) string {
	st := s.b.Statistics()
	parts := []string{
		fmt.Sprintf("%d tasks, %d done, %d overdue", st.Total, st.Completed, st.Overdue),
	}
	if s.searching {
		parts = append(parts, s.search.View())
	} else if s.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.filter.Search))
	}
	if s.filter.Category != "" {
		parts = append(parts, "category "+s.filter.Category)
	}
	if s.filter.Priority != 0 {
		parts = append(parts, fmt.Sprintf("priority %d", s.filter.Priority))
	}
	if s.b.Loading() || s.b.Pending() {
		parts = append(parts, loading)
	}
	return lipgloss.NewStyle().MaxWidth(max(s.w, 20)).Render(strings.Join(parts, " · "))
}

func renderCard(t tgmini.Task, width int, now time.Time) (string, string) {
	title := t.Title
	if t.IsImportant {
		title = "★ " + title
	}
	title = truncate(title, width)

	meta := fmt.Sprintf("P%d %s", t.Priority, tgmini.PriorityLabel(t.Priority))
	if t.Category != "" {
		meta += " · " + t.Category
	}
	if due, err := tgmini.ParseTimestamp(t.DueDate); err == nil {
		meta += " · " + due.Format("Jan 2")
	}
	meta = truncate(meta, width)
	style := lipgloss.NewStyle().Foreground(priorityColors[t.Priority])
	if t.IsOverdue(now) {
		style = overdueStyle
	}
	return title, style.Render(meta)
}
