package board

import (
	"slices"
	"time"

	"github.com/benjamonnguyen/tgmini"
)

// Buckets partitions a user's tasks by status. Every status in
// tgmini.Statuses has an entry, possibly empty.
type Buckets map[tgmini.TaskStatus][]tgmini.Task

func emptyBuckets() Buckets {
	b := make(Buckets, len(tgmini.Statuses))
	for _, s := range tgmini.Statuses {
		b[s] = []tgmini.Task{}
	}
	return b
}

// Partition groups tasks by status, keeping server order within a bucket.
// Tasks with an unknown status are returned separately.
func Partition(tasks []tgmini.Task) (Buckets, []tgmini.Task) {
	b := emptyBuckets()
	var unknown []tgmini.Task
	for _, t := range tasks {
		if !t.Status.Valid() {
			unknown = append(unknown, t)
			continue
		}
		b[t.Status] = append(b[t.Status], t)
	}
	return b, unknown
}

func (b Buckets) Clone() Buckets {
	out := make(Buckets, len(b))
	for s, tasks := range b {
		out[s] = slices.Clone(tasks)
	}
	return out
}

// Find returns the task with id and the bucket holding it.
func (b Buckets) Find(id int) (tgmini.Task, tgmini.TaskStatus, bool) {
	for _, s := range tgmini.Statuses {
		for _, t := range b[s] {
			if t.ID == id {
				return t, s, true
			}
		}
	}
	return tgmini.Task{}, "", false
}

func (b Buckets) Len() int {
	n := 0
	for _, tasks := range b {
		n += len(tasks)
	}
	return n
}

// Consistent reports whether every task sits in the bucket of its status,
// appears once, and has completedAt set exactly when completed.
func (b Buckets) Consistent() bool {
	seen := make(map[int]bool, b.Len())
	for s, tasks := range b {
		for _, t := range tasks {
			if t.Status != s || !t.ConsistentCompletion() || seen[t.ID] {
				return false
			}
			seen[t.ID] = true
		}
	}
	return true
}

// ResolveDrop moves task from source to target and returns the new partition.
// The input is never modified. It reports false, returning b unchanged, when
// the drop is a no-op: same bucket, unknown target, or the task is not in source.
func ResolveDrop(b Buckets, task tgmini.Task, source, target tgmini.TaskStatus, now time.Time) (Buckets, bool) {
	if source == target || !target.Valid() {
		return b, false
	}
	idx := slices.IndexFunc(b[source], func(t tgmini.Task) bool {
		return t.ID == task.ID
	})
	if idx < 0 {
		return b, false
	}

	next := b.Clone()
	moved := next[source][idx].WithStatus(target, now)
	next[source] = slices.Delete(next[source], idx, idx+1)
	next[target] = append(next[target], moved)
	return next, true
}
