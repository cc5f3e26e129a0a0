package tgmini

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWithStatusKeepsCompletionInvariant(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name          string
		task          Task
		to            TaskStatus
		wantCompleted *time.Time
	}{
		{
			name:          "created to completed sets completedAt",
			task:          Task{ID: 1, Status: StatusCreated},
			to:            StatusCompleted,
			wantCompleted: &now,
		},
		{
			name:          "completed to in progress clears completedAt",
			task:          Task{ID: 1, Status: StatusCompleted, CompletedAt: NewTimestamp(earlier)},
			to:            StatusInProgress,
			wantCompleted: nil,
		},
		{
			name:          "completed to completed keeps original completedAt",
			task:          Task{ID: 1, Status: StatusCompleted, CompletedAt: NewTimestamp(earlier)},
			to:            StatusCompleted,
			wantCompleted: &earlier,
		},
		{
			name:          "stale completedAt on created is cleared",
			task:          Task{ID: 1, Status: StatusCreated, CompletedAt: NewTimestamp(earlier)},
			to:            StatusInProgress,
			wantCompleted: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.task.WithStatus(tt.to, now)
			if got.Status != tt.to {
				t.Fatalf("status = %s, want %s", got.Status, tt.to)
			}
			if !got.ConsistentCompletion() {
				t.Fatalf("completedAt/status mismatch: %+v", got)
			}
			switch {
			case tt.wantCompleted == nil && got.CompletedAt != nil:
				t.Errorf("completedAt = %v, want nil", got.CompletedAt)
			case tt.wantCompleted != nil && (got.CompletedAt == nil || !got.CompletedAt.Equal(*tt.wantCompleted)):
				t.Errorf("completedAt = %v, want %v", got.CompletedAt, *tt.wantCompleted)
			}
		})
	}
}

func TestWithStatusDoesNotMutateReceiver(t *testing.T) {
	orig := Task{ID: 7, Status: StatusCreated}
	_ = orig.WithStatus(StatusCompleted, time.Now())
	if orig.Status != StatusCreated || orig.CompletedAt != nil {
		t.Errorf("receiver mutated: %+v", orig)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due", Task{Status: StatusCreated, DueDate: "2026-03-01T00:00:00"}, true},
		{"future due", Task{Status: StatusInProgress, DueDate: "2026-04-01T00:00:00"}, false},
		{"completed never overdue", Task{Status: StatusCompleted, DueDate: "2026-03-01T00:00:00"}, false},
		{"no due date", Task{Status: StatusCreated}, false},
		{"garbage due date", Task{Status: StatusCreated, DueDate: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTaskInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	valid := NewTaskInput("  write report ", StatusInProgress, now)
	valid.Category = ""
	got, err := ValidateTaskInput(valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "write report" {
		t.Errorf("title = %q, want trimmed", got.Title)
	}
	if got.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", got.Category, DefaultCategory)
	}
	if got.DueDate != "2026-03-17T00:00:00" {
		t.Errorf("dueDate = %q", got.DueDate)
	}

	tests := []struct {
		name    string
		mutate  func(*TaskInput)
		wantSub string
	}{
		{"blank title", func(in *TaskInput) { in.Title = "   " }, "title"},
		{"priority too high", func(in *TaskInput) { in.Priority = 6 }, "priority"},
		{"priority zero", func(in *TaskInput) { in.Priority = 0 }, "priority"},
		{"unknown status", func(in *TaskInput) { in.Status = "DONE" }, "status"},
		{"bad due date", func(in *TaskInput) { in.DueDate = "tomorrow" }, "duedate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewTaskInput("task", StatusCreated, now)
			tt.mutate(&in)
			_, err := ValidateTaskInput(in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestTimestampJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Time
		wantNil bool
	}{
		{"zoneless", `{"completedAt":"2026-03-01T10:30:00"}`, time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local), false},
		{"fractional", `{"completedAt":"2026-03-01T10:30:00.123"}`, time.Date(2026, 3, 1, 10, 30, 0, 123000000, time.Local), false},
		{"rfc3339", `{"completedAt":"2026-03-01T10:30:00Z"}`, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), false},
		{"null", `{"completedAt":null}`, time.Time{}, true},
		{"absent", `{}`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			if err := json.Unmarshal([]byte(tt.body), &task); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tt.wantNil {
				if task.CompletedAt != nil {
					t.Errorf("completedAt = %v, want nil", task.CompletedAt)
				}
				return
			}
			if task.CompletedAt == nil || !task.CompletedAt.Equal(tt.want) {
				t.Errorf("completedAt = %v, want %v", task.CompletedAt, tt.want)
			}
		})
	}

	var task Task
	if err := json.Unmarshal([]byte(`{"completedAt":"yesterday"}`), &task); err == nil {
		t.Error("expected error for unrecognized timestamp")
	}
}
