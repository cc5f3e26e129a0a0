package main

import (
	"context"
	"testing"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/board"
	"github.com/benjamonnguyen/tgmini/notify"
	tea "github.com/charmbracelet/bubbletea"
)

func TestNextCategory(t *testing.T) {
	cats := []string{"home", "work"}
	tests := []struct {
		current string
		want    string
	}{
		{"", "home"},
		{"home", "work"},
		{"work", ""},
		{"gone", "home"},
	}
	for _, tt := range tests {
		if got := nextCategory(cats, tt.current); got != tt.want {
			t.Errorf("nextCategory(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := nextCategory(nil, "home"); got != "" {
		t.Errorf("nextCategory with no categories = %q", got)
	}
}

func TestTaskFormInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newTaskForm(tgmini.StatusInProgress, now)
	f.inputs[fieldTitle].SetValue("write report")
	f.important = true

	in, err := f.input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Status != tgmini.StatusInProgress || !in.IsImportant {
		t.Errorf("input = %+v", in)
	}
	if in.DueDate != "2026-03-17T00:00:00" {
		t.Errorf("DueDate = %q", in.DueDate)
	}
	if in.Priority != tgmini.DefaultPriority || in.Category != tgmini.DefaultCategory {
		t.Errorf("defaults not applied: %+v", in)
	}
	if _, err := tgmini.ValidateTaskInput(in); err != nil {
		t.Errorf("ValidateTaskInput: %v", err)
	}

	f.inputs[fieldPriority].SetValue("x")
	if _, err := f.input(); err == nil {
		t.Error("expected priority error")
	}
}

func TestTaskAtMapsCells(t *testing.T) {
	b, _ := newTestBoardScreen(t, []tgmini.Task{
		{ID: 1, Title: "a", Status: tgmini.StatusCreated},
		{ID: 2, Title: "b", Status: tgmini.StatusCreated},
		{ID: 3, Title: "c", Status: tgmini.StatusCompleted},
	})

	tests := []struct {
		x, y   int
		wantID int
		ok     bool
	}{
		{x: 0, y: boardCardsY, wantID: 1, ok: true},
		{x: 5, y: boardCardsY + cardHeight, wantID: 2, ok: true},
		{x: 0, y: boardCardsY + 2*cardHeight, ok: false},
		{x: 2 * b.colWidth(), y: boardCardsY + 1, wantID: 3, ok: true},
		{x: 0, y: boardHeaderY, ok: false},
	}
	for _, tt := range tests {
		task, _, ok := b.taskAt(tt.x, tt.y)
		if ok != tt.ok || (ok && task.ID != tt.wantID) {
			t.Errorf("taskAt(%d, %d) = %d %v, want %d %v", tt.x, tt.y, task.ID, ok, tt.wantID, tt.ok)
		}
	}
}

type stubTasks struct {
	tasks []tgmini.Task
}

func (s stubTasks) GetUserTasks(context.Context, int) ([]tgmini.Task, error) {
	return s.tasks, nil
}

func (s stubTasks) CreateTask(context.Context, int, tgmini.TaskInput) (tgmini.Task, error) {
	return tgmini.Task{}, nil
}

func (s stubTasks) UpdateTaskStatus(_ context.Context, id int, status tgmini.TaskStatus) (tgmini.Task, error) {
	return tgmini.Task{ID: id, Status: status}, nil
}

func (s stubTasks) DeleteTask(context.Context, int) error {
	return nil
}

func (s stubTasks) GetTaskStatistics(context.Context, int) (tgmini.TaskStatistics, error) {
	return tgmini.TaskStatistics{}, nil
}

func newTestBoardScreen(t *testing.T, tasks []tgmini.Task) (*boardScreen, *notify.Center) {
	t.Helper()
	toasts := notify.NewCenter()
	b := board.New(1, stubTasks{tasks: tasks}, toasts)
	s := newBoardScreen(b, toasts)
	s.resize(90, 30)
	s.Update(b.LoadTasks()())
	if got := b.Buckets().Len(); got != len(tasks) {
		t.Fatalf("loaded %d tasks, want %d", got, len(tasks))
	}
	return s, toasts
}

func TestMouseDragMovesCard(t *testing.T) {
	s, _ := newTestBoardScreen(t, []tgmini.Task{
		{ID: 1, Title: "a", Status: tgmini.StatusCreated},
	})
	doneX := 2*s.colWidth() + 3

	s.Update(tea.MouseMsg{X: 1, Y: boardCardsY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s.Update(tea.MouseMsg{X: doneX, Y: boardCardsY + 4, Action: tea.MouseActionMotion})
	if !s.scrollLocked {
		t.Error("scroll should be locked past the threshold")
	}
	if cmd := s.Update(tea.MouseMsg{X: doneX, Y: boardCardsY + 4, Action: tea.MouseActionRelease}); cmd == nil {
		t.Fatal("release over a column should send a status update")
	}

	if _, status, ok := s.b.Buckets().Find(1); !ok || status != tgmini.StatusCompleted {
		t.Errorf("task 1 in %q, want COMPLETED", status)
	}
	if _, ok := s.b.Drag(); ok {
		t.Error("drag should end on release")
	}
}
