// Package notify keeps the short-lived notifications shown over every screen.
package notify

import (
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultLimit = 5
	DefaultTTL   = 5 * time.Second
)

type Variant int

const (
	VariantDefault Variant = iota
	VariantSuccess
	VariantDestructive
)

type Toast struct {
	Title       string
	Description string
	Variant     Variant

	timer timer.Model
}

// ID identifies the toast for Dismiss.
func (t Toast) ID() int {
	return t.timer.ID()
}

// Notifier is what controllers report through.
type Notifier interface {
	Push(v Variant, title, description string) tea.Cmd
}

// Center holds the visible toasts, newest first. It is owned by the event
// loop and is not safe for concurrent use.
type Center struct {
	toasts []Toast
	limit  int
	ttl    time.Duration
}

var _ Notifier = (*Center)(nil)

func NewCenter() *Center {
	return &Center{
		limit: DefaultLimit,
		ttl:   DefaultTTL,
	}
}

func (c *Center) WithLimit(n int) *Center {
	if n > 0 {
		c.limit = n
	}
	return c
}

func (c *Center) WithTTL(ttl time.Duration) *Center {
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

// Push shows a toast and returns the command that expires it. The oldest toast
// is dropped once the limit is reached.
func (c *Center) Push(v Variant, title, description string) tea.Cmd {
	t := Toast{
		Title:       title,
		Description: description,
		Variant:     v,
		timer:       timer.NewWithInterval(c.ttl, c.ttl),
	}
	c.toasts = append([]Toast{t}, c.toasts...)
	if len(c.toasts) > c.limit {
		c.toasts = c.toasts[:c.limit]
	}
	return t.timer.Init()
}

func (c *Center) Success(title, description string) tea.Cmd {
	return c.Push(VariantSuccess, title, description)
}

func (c *Center) Failure(title string, err error) tea.Cmd {
	desc := ""
	if err != nil {
		desc = err.Error()
	}
	return c.Push(VariantDestructive, title, desc)
}

func (c *Center) Dismiss(id int) {
	for i, t := range c.toasts {
		if t.ID() == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Update routes timer messages to the owning toast and removes expired ones.
func (c *Center) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case timer.TimeoutMsg:
		c.Dismiss(msg.ID)
		return nil
	case timer.TickMsg:
		for i := range c.toasts {
			if c.toasts[i].ID() != msg.ID {
				continue
			}
			var cmd tea.Cmd
			c.toasts[i].timer, cmd = c.toasts[i].timer.Update(msg)
			return cmd
		}
	}
	return nil
}

// Toasts returns the visible toasts, newest first.
func (c *Center) Toasts() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}
