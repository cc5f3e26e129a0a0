package tgmini

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultCategory = "Umumiy"
	DefaultPriority = 3
	defaultDueIn    = 7 * 24 * time.Hour
)

// WithStatus returns a copy of t moved to status. CompletedAt is set on entry
// into COMPLETED (kept if already set) and cleared on any other status.
func (t Task) WithStatus(status TaskStatus, now time.Time) Task {
	t.Status = status
	if status == StatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = NewTimestamp(now)
		}
	} else {
		t.CompletedAt = nil
	}
	return t
}

// ConsistentCompletion reports whether completedAt is set exactly when the task is COMPLETED.
func (t Task) ConsistentCompletion() bool {
	return (t.CompletedAt != nil) == (t.Status == StatusCompleted)
}

func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted || t.DueDate == "" {
		return false
	}
	due, err := ParseTimestamp(t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

func PriorityLabel(p int) string {
	switch p {
	case 5:
		return "very high"
	case 4:
		return "high"
	case 3:
		return "medium"
	case 2:
		return "low"
	case 1:
		return "very low"
	default:
		return "unset"
	}
}

// NewTaskInput fills the form defaults for a task created on the given bucket.
func NewTaskInput(title string, status TaskStatus, now time.Time) TaskInput {
	due := now.Add(defaultDueIn)
	return TaskInput{
		Title:    title,
		Status:   status,
		DueDate:  due.Format("2006-01-02") + "T00:00:00",
		Priority: DefaultPriority,
		Category: DefaultCategory,
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func taskValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateTaskInput trims the input, applies the category default and checks
// field constraints. The returned error lists every failing field.
func ValidateTaskInput(in TaskInput) (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}

	err := taskValidator().Struct(in)
	if err == nil {
		return in, nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return in, err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return in, fmt.Errorf("invalid task: %s", strings.Join(msgs, ", "))
}
