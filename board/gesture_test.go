package board

import (
	"testing"

	"github.com/benjamonnguyen/tgmini"
)

func layout(tch *TouchAdapter) {
	tch.SetBucketBounds(tgmini.StatusCreated, Rect{X: 0, Y: 0, W: 99, H: 400})
	tch.SetBucketBounds(tgmini.StatusInProgress, Rect{X: 100, Y: 0, W: 99, H: 400})
	tch.SetBucketBounds(tgmini.StatusCompleted, Rect{X: 200, Y: 0, W: 99, H: 400})
}

func TestRectContainsInclusive(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{15, 15, true},
		{12, 13, true},
		{9, 12, false},
		{16, 12, false},
		{12, 16, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTouchThreshold(t *testing.T) {
	b, _ := newTestBoard(t, twoTasks())
	tch := NewTouchAdapter(b, DefaultTouchThreshold)
	layout(tch)

	tch.TouchStart(b.Bucket(tgmini.StatusCreated)[0], tgmini.StatusCreated, 50, 50)
	if tch.TouchMove(55, 58) {
		t.Error("small move suppressed scrolling")
	}
	if !tch.TouchMove(50, 61) {
		t.Error("move past threshold did not suppress scrolling")
	}
	if !tch.TouchMove(39, 50) {
		t.Error("horizontal move past threshold did not suppress scrolling")
	}
}

func TestTouchHitTestHighlights(t *testing.T) {
	b, _ := newTestBoard(t, twoTasks())
	tch := NewTouchAdapter(b, DefaultTouchThreshold)
	layout(tch)

	tch.TouchStart(b.Bucket(tgmini.StatusCreated)[0], tgmini.StatusCreated, 50, 50)
	tch.TouchMove(150, 50)
	if b.Hover() != tgmini.StatusInProgress {
		t.Errorf("hover = %q", b.Hover())
	}
	tch.TouchMove(150, 900)
	if b.Hover() != "" {
		t.Errorf("hover outside buckets = %q", b.Hover())
	}
}

func TestTouchReleaseUsesSameTransition(t *testing.T) {
	svc := twoTasks()
	b, _ := newTestBoard(t, svc)
	tch := NewTouchAdapter(b, DefaultTouchThreshold)
	layout(tch)

	tch.TouchStart(b.Bucket(tgmini.StatusCreated)[0], tgmini.StatusCreated, 50, 50)
	tch.TouchMove(250, 60)
	cmd := tch.TouchEnd(250, 60)
	if cmd == nil {
		t.Fatal("release over another bucket returned no command")
	}
	done := b.Bucket(tgmini.StatusCompleted)
	if len(done) != 1 || done[0].CompletedAt == nil {
		t.Errorf("COMPLETED = %+v", done)
	}
	run(b, cmd)
	if len(svc.patches) != 1 || svc.patches[0] != "/api/tasks/1/status/COMPLETED" {
		t.Errorf("patches = %v", svc.patches)
	}
	if tch.Tracking() {
		t.Error("still tracking after release")
	}
}

func TestTouchReleaseOutsideCancels(t *testing.T) {
	b, _ := newTestBoard(t, twoTasks())
	tch := NewTouchAdapter(b, DefaultTouchThreshold)
	layout(tch)
	before := b.Buckets()

	tch.TouchStart(b.Bucket(tgmini.StatusCreated)[0], tgmini.StatusCreated, 50, 50)
	if cmd := tch.TouchEnd(500, 500); cmd != nil {
		t.Error("release outside returned a command")
	}
	if _, ok := b.Drag(); ok {
		t.Error("drag not cancelled")
	}
	if b.Buckets().Len() != before.Len() {
		t.Error("board changed")
	}
}

func TestPointerAdapter(t *testing.T) {
	svc := twoTasks()
	b, _ := newTestBoard(t, svc)
	p := NewPointerAdapter(b)

	p.DragStart(b.Bucket(tgmini.StatusInProgress)[0], tgmini.StatusInProgress)
	p.DragOver(tgmini.StatusCreated)
	if b.Hover() != tgmini.StatusCreated {
		t.Errorf("hover = %q", b.Hover())
	}
	p.DragLeave()
	if b.Hover() != "" {
		t.Error("hover not cleared")
	}
	run(b, p.Drop(tgmini.StatusCreated))

	if got := ids(b.Bucket(tgmini.StatusCreated)); len(got) != 2 {
		t.Errorf("CREATED = %v", got)
	}
}
