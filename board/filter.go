package board

import (
	"slices"
	"strings"
	"time"

	"github.com/benjamonnguyen/tgmini"
)

// Filter is AND-combined. Zero fields match everything.
type Filter struct {
	Search   string
	Category string
	Priority int
}

func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Priority == 0
}

func (f Filter) Match(t tgmini.Task) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != 0 && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns a filtered copy of b.
func (f Filter) Apply(b Buckets) Buckets {
	out := make(Buckets, len(b))
	for s, tasks := range b {
		matched := []tgmini.Task{}
		for _, t := range tasks {
			if f.Match(t) {
				matched = append(matched, t)
			}
		}
		out[s] = matched
	}
	return out
}

// Categories lists the distinct non-empty categories in b, sorted.
func Categories(b Buckets) []string {
	var cats []string
	for _, tasks := range b {
		for _, t := range tasks {
			if t.Category != "" && !slices.Contains(cats, t.Category) {
				cats = append(cats, t.Category)
			}
		}
	}
	slices.Sort(cats)
	return cats
}

// Count derives statistics from the loaded tasks without a server call.
func Count(b Buckets, now time.Time) tgmini.TaskStatistics {
	st := tgmini.TaskStatistics{
		Created:    len(b[tgmini.StatusCreated]),
		InProgress: len(b[tgmini.StatusInProgress]),
		Completed:  len(b[tgmini.StatusCompleted]),
	}
	st.Total = st.Created + st.InProgress + st.Completed
	for _, tasks := range b {
		for _, t := range tasks {
			if t.IsOverdue(now) {
				st.Overdue++
			}
		}
	}
	return st
}
