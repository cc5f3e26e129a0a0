package notify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/timer"
)

func TestPushNewestFirstAndLimit(t *testing.T) {
	c := NewCenter()
	for i := 0; i < DefaultLimit+2; i++ {
		if cmd := c.Push(VariantDefault, fmt.Sprintf("t%d", i), ""); cmd == nil {
			t.Fatal("Push should return an expiry command")
		}
	}

	got := c.Toasts()
	if len(got) != DefaultLimit {
		t.Fatalf("len = %d, want %d", len(got), DefaultLimit)
	}
	if got[0].Title != "t6" || got[len(got)-1].Title != "t2" {
		t.Errorf("order = %s..%s", got[0].Title, got[len(got)-1].Title)
	}
}

func TestVariants(t *testing.T) {
	c := NewCenter()
	c.Success("saved", "")
	c.Failure("failed", errors.New("boom"))

	got := c.Toasts()
	if got[0].Variant != VariantDestructive || got[0].Description != "boom" {
		t.Errorf("failure toast = %+v", got[0])
	}
	if got[1].Variant != VariantSuccess {
		t.Errorf("success toast = %+v", got[1])
	}
}

func TestTimeoutRemovesOnlyOwner(t *testing.T) {
	c := NewCenter()
	c.Push(VariantDefault, "a", "")
	c.Push(VariantDefault, "b", "")
	a := c.Toasts()[1]

	c.Update(timer.TimeoutMsg{ID: a.ID()})

	got := c.Toasts()
	if len(got) != 1 || got[0].Title != "b" {
		t.Errorf("toasts = %+v", got)
	}
}

func TestDismissUnknownIsNoop(t *testing.T) {
	c := NewCenter()
	c.Push(VariantDefault, "a", "")
	c.Dismiss(-1)
	if len(c.Toasts()) != 1 {
		t.Error("unknown id removed a toast")
	}
}
