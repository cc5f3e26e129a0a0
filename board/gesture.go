package board

import (
	"github.com/benjamonnguyen/tgmini"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTouchThreshold is how far a touch travels before scrolling is
// suppressed.
const DefaultTouchThreshold = 10

// PointerAdapter maps drag-and-drop pointer events onto the board.
type PointerAdapter struct {
	b *Board
}

func NewPointerAdapter(b *Board) *PointerAdapter {
	return &PointerAdapter{b: b}
}

func (p *PointerAdapter) DragStart(task tgmini.Task, source tgmini.TaskStatus) {
	p.b.BeginDrag(task, source)
}

func (p *PointerAdapter) DragOver(target tgmini.TaskStatus) {
	p.b.DragOverBucket(target)
}

func (p *PointerAdapter) DragLeave() {
	p.b.DragLeaveBucket()
}

func (p *PointerAdapter) Drop(target tgmini.TaskStatus) tea.Cmd {
	return p.b.CompleteDrag(target)
}

func (p *PointerAdapter) DragEnd() {
	p.b.CancelDrag()
}

// Rect is a bucket's bounding box. Edges are inclusive.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// TouchAdapter tracks a touch gesture, hit-testing the touch point against
// bucket bounds on every move.
type TouchAdapter struct {
	b         *Board
	threshold int
	bounds    map[tgmini.TaskStatus]Rect

	tracking       bool
	startX, startY int
}

func NewTouchAdapter(b *Board, threshold int) *TouchAdapter {
	if threshold < 0 {
		threshold = DefaultTouchThreshold
	}
	return &TouchAdapter{
		b:         b,
		threshold: threshold,
		bounds:    make(map[tgmini.TaskStatus]Rect, len(tgmini.Statuses)),
	}
}

func (t *TouchAdapter) SetBucketBounds(s tgmini.TaskStatus, r Rect) {
	t.bounds[s] = r
}

// BucketAt returns the bucket under the point, checked in display order.
func (t *TouchAdapter) BucketAt(x, y int) (tgmini.TaskStatus, bool) {
	for _, s := range tgmini.Statuses {
		if r, ok := t.bounds[s]; ok && r.Contains(x, y) {
			return s, true
		}
	}
	return "", false
}

func (t *TouchAdapter) Tracking() bool {
	return t.tracking
}

func (t *TouchAdapter) TouchStart(task tgmini.Task, source tgmini.TaskStatus, x, y int) {
	t.tracking = true
	t.startX, t.startY = x, y
	t.b.BeginDrag(task, source)
}

// TouchMove updates the highlighted bucket. It reports whether the gesture
// has moved past the threshold, in which case scrolling must be suppressed.
func (t *TouchAdapter) TouchMove(x, y int) bool {
	if !t.tracking {
		return false
	}
	if s, ok := t.BucketAt(x, y); ok {
		t.b.DragOverBucket(s)
	} else {
		t.b.DragLeaveBucket()
	}
	return abs(x-t.startX) > t.threshold || abs(y-t.startY) > t.threshold
}

// TouchEnd drops on the bucket under the release point, or cancels the drag
// when there is none.
func (t *TouchAdapter) TouchEnd(x, y int) tea.Cmd {
	if !t.tracking {
		return nil
	}
	t.tracking = false
	s, ok := t.BucketAt(x, y)
	if !ok {
		t.b.CancelDrag()
		return nil
	}
	return t.b.CompleteDrag(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
