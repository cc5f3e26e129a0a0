// Package board is the kanban controller. It owns the task buckets, the drag
// context and the optimistic status change that is reconciled by reloading.
package board

import (
	"slices"
	"time"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type DragContext struct {
	Task   tgmini.Task
	Source tgmini.TaskStatus
}

type Board struct {
	// supplied
	userID   int
	svc      tgmini.TaskService
	notifier notify.Notifier
	l        tgmini.Logger
	now      func() time.Time
	timeout  time.Duration

	// state
	id       uuid.UUID
	buckets  Buckets
	drag     *DragContext
	hover    tgmini.TaskStatus
	loadSeq  int
	loading  bool
	loadErr  error
	stats    *tgmini.TaskStatistics
	closed   bool
	inFlight int
}

type Option func(*Board)

func WithLogger(l tgmini.Logger) Option {
	return func(b *Board) {
		b.l = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

func WithTimeout(d time.Duration) Option {
	return func(b *Board) {
		b.timeout = d
	}
}

func New(userID int, svc tgmini.TaskService, n notify.Notifier, opts ...Option) *Board {
	b := &Board{
		userID:   userID,
		svc:      svc,
		notifier: n,
		l:        tgmini.NopLogger,
		now:      time.Now,
		id:       uuid.New(),
		buckets:  emptyBuckets(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) ID() uuid.UUID {
	return b.id
}

// Close detaches the board. Results of calls still in flight are dropped.
func (b *Board) Close() {
	b.closed = true
	b.drag = nil
	b.hover = ""
}

// Buckets returns a copy of the current partition.
func (b *Board) Buckets() Buckets {
	return b.buckets.Clone()
}

func (b *Board) Bucket(s tgmini.TaskStatus) []tgmini.Task {
	return b.buckets.Clone()[s]
}

// View is the filtered projection of the buckets.
func (b *Board) View(f Filter) Buckets {
	return f.Apply(b.buckets)
}

func (b *Board) Categories() []string {
	return Categories(b.buckets)
}

// Statistics prefers the server figures and falls back to counting the
// loaded buckets.
func (b *Board) Statistics() tgmini.TaskStatistics {
	if b.stats != nil {
		return *b.stats
	}
	return Count(b.buckets, b.now())
}

func (b *Board) Loading() bool {
	return b.loading
}

// LoadErr is the error of the last load, nil once a load succeeds.
func (b *Board) LoadErr() error {
	return b.loadErr
}

func (b *Board) Drag() (DragContext, bool) {
	if b.drag == nil {
		return DragContext{}, false
	}
	return *b.drag, true
}

// Hover is the highlighted drop target, empty when none.
func (b *Board) Hover() tgmini.TaskStatus {
	return b.hover
}

// LoadTasks fetches every task of the user. Only the latest issued load is
// applied when several overlap.
func (b *Board) LoadTasks() tea.Cmd {
	if b.closed {
		return nil
	}
	b.loadSeq++
	b.loading = true

	id, seq, userID, svc, timeout := b.id, b.loadSeq, b.userID, b.svc, b.timeout
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		tasks, err := svc.GetUserTasks(ctx, userID)
		return TasksLoadedMsg{board: id, seq: seq, tasks: tasks, err: err}
	}
}

func (b *Board) LoadStatistics() tea.Cmd {
	if b.closed {
		return nil
	}
	id, userID, svc, timeout := b.id, b.userID, b.svc, b.timeout
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		st, err := svc.GetTaskStatistics(ctx, userID)
		return StatisticsMsg{board: id, stats: st, err: err}
	}
}

// BeginDrag makes task the single active drag, replacing any stale one.
func (b *Board) BeginDrag(task tgmini.Task, source tgmini.TaskStatus) {
	if b.closed {
		return
	}
	b.drag = &DragContext{Task: task, Source: source}
	b.hover = ""
}

func (b *Board) DragOverBucket(target tgmini.TaskStatus) {
	if b.drag == nil || !target.Valid() {
		return
	}
	b.hover = target
}

func (b *Board) DragLeaveBucket() {
	b.hover = ""
}

func (b *Board) CancelDrag() {
	b.drag = nil
	b.hover = ""
}

// CompleteDrag drops the dragged task on target. A drop on the source bucket
// only clears the drag. Otherwise the move is applied locally at once and the
// returned command persists it; the board reloads whatever the outcome.
func (b *Board) CompleteDrag(target tgmini.TaskStatus) tea.Cmd {
	drag := b.drag
	b.drag = nil
	b.hover = ""
	if drag == nil || b.closed {
		return nil
	}

	original, _, found := b.buckets.Find(drag.Task.ID)
	if !found {
		return nil
	}
	next, moved := ResolveDrop(b.buckets, original, drag.Source, target, b.now())
	if !moved {
		return nil
	}
	b.buckets = next
	b.inFlight++
	// loads issued before the move would overwrite it with a stale snapshot
	b.loadSeq++
	b.l.Debug("optimistic status change", "task", original.ID, "from", drag.Source, "to", target)

	id, svc, timeout, source := b.id, b.svc, b.timeout, drag.Source
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		_, err := svc.UpdateTaskStatus(ctx, original.ID, target)
		return StatusUpdatedMsg{
			board:    id,
			taskID:   original.ID,
			status:   target,
			original: original,
			source:   source,
			err:      err,
		}
	}
}

// rollback undoes an optimistic move that the server rejected, as long as
// the task is still where the move put it.
func (b *Board) rollback(msg StatusUpdatedMsg) {
	current, at, found := b.buckets.Find(msg.taskID)
	if !found || at != msg.status || current.Status != msg.status {
		return
	}
	next := b.buckets.Clone()
	next[at] = slices.DeleteFunc(next[at], func(t tgmini.Task) bool {
		return t.ID == msg.taskID
	})
	next[msg.source] = append(next[msg.source], msg.original)
	b.buckets = next
}

// CreateTask validates in before anything is sent. On success the board is
// reloaded rather than patched.
func (b *Board) CreateTask(in tgmini.TaskInput) tea.Cmd {
	if b.closed {
		return nil
	}
	valid, err := tgmini.ValidateTaskInput(in)
	if err != nil {
		return b.notifier.Push(notify.VariantDestructive, "Invalid task", err.Error())
	}

	id, userID, svc, timeout := b.id, b.userID, b.svc, b.timeout
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		task, err := svc.CreateTask(ctx, userID, valid)
		return TaskCreatedMsg{board: id, task: task, err: err}
	}
}

func (b *Board) DeleteTask(taskID int) tea.Cmd {
	if b.closed {
		return nil
	}
	id, svc, timeout := b.id, b.svc, b.timeout
	return func() tea.Msg {
		ctx, cancel := tgmini.RequestContext(timeout)
		defer cancel()
		err := svc.DeleteTask(ctx, taskID)
		return TaskDeletedMsg{board: id, taskID: taskID, err: err}
	}
}

// Pending reports whether a status change awaits the server.
func (b *Board) Pending() bool {
	return b.inFlight > 0
}

// Update applies results of this board's commands. Messages of another
// board, or arriving after Close, are ignored.
func (b *Board) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(boardMsg)
	if !ok || m.boardID() != b.id || b.closed {
		return nil
	}

	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.seq != b.loadSeq {
			b.l.Debug("dropping superseded task load", "seq", msg.seq, "latest", b.loadSeq)
			return nil
		}
		b.loading = false
		if msg.err != nil {
			b.loadErr = msg.err
			b.l.Warn("failed loading tasks", "user", b.userID, "error", msg.err)
			return b.notifier.Push(notify.VariantDestructive, "Error", "Failed to load tasks.")
		}
		buckets, unknown := Partition(msg.tasks)
		for _, t := range unknown {
			b.l.Warn("task with unknown status", "task", t.ID, "status", t.Status)
		}
		b.loadErr = nil
		b.buckets = buckets
		if b.drag != nil {
			if _, _, found := b.buckets.Find(b.drag.Task.ID); !found {
				b.CancelDrag()
			}
		}
		return nil
	case StatisticsMsg:
		if msg.err != nil {
			b.l.Warn("failed loading statistics", "user", b.userID, "error", msg.err)
			return nil
		}
		st := msg.stats
		b.stats = &st
		return nil
	case StatusUpdatedMsg:
		b.inFlight--
		if msg.err != nil {
			b.rollback(msg)
			b.l.Warn("failed updating task status", "task", msg.taskID, "status", msg.status, "error", msg.err)
			return tea.Batch(
				b.LoadTasks(),
				b.notifier.Push(notify.VariantDestructive, "Error", "Failed to update task status."),
			)
		}
		return tea.Batch(
			b.LoadTasks(),
			b.LoadStatistics(),
			b.notifier.Push(notify.VariantSuccess, "Updated", "Task status updated."),
		)
	case TaskCreatedMsg:
		if msg.err != nil {
			b.l.Warn("failed creating task", "error", msg.err)
			return b.notifier.Push(notify.VariantDestructive, "Error", "Failed to create task.")
		}
		return tea.Batch(
			b.LoadTasks(),
			b.LoadStatistics(),
			b.notifier.Push(notify.VariantSuccess, "Created", "Task created."),
		)
	case TaskDeletedMsg:
		if msg.err != nil {
			b.l.Warn("failed deleting task", "task", msg.taskID, "error", msg.err)
			return b.notifier.Push(notify.VariantDestructive, "Error", "Failed to delete task.")
		}
		return tea.Batch(
			b.LoadTasks(),
			b.LoadStatistics(),
			b.notifier.Push(notify.VariantSuccess, "Deleted", "Task deleted."),
		)
	}
	return nil
}
