package board

import (
	"reflect"
	"testing"
	"time"

	"github.com/benjamonnguyen/tgmini"
)

func filterFixture() Buckets {
	b, _ := Partition([]tgmini.Task{
		{ID: 1, Title: "Buy milk", Description: "", Status: tgmini.StatusCreated, Category: "home", Priority: 2},
		{ID: 2, Title: "Report", Description: "quarterly MILK figures", Status: tgmini.StatusInProgress, Category: "work", Priority: 5},
		{ID: 3, Title: "Deploy", Description: "prod", Status: tgmini.StatusCompleted, Category: "work", Priority: 5},
	})
	return b
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"zero matches all", Filter{}, []int{1, 2, 3}},
		{"search title and description", Filter{Search: "milk"}, []int{1, 2}},
		{"search ignores case", Filter{Search: "DEPLOY"}, []int{3}},
		{"search keeps surrounding spaces", Filter{Search: "milk "}, []int{2}},
		{"category", Filter{Category: "work"}, []int{2, 3}},
		{"priority", Filter{Priority: 2}, []int{1}},
		{"combined", Filter{Search: "milk", Category: "work", Priority: 5}, []int{2}},
		{"no match", Filter{Category: "garden"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filterFixture()
			before := src.Clone()

			got := tt.filter.Apply(src)

			var all []int
			for _, s := range tgmini.Statuses {
				all = append(all, ids(got[s])...)
			}
			if all == nil {
				all = []int{}
			}
			if !reflect.DeepEqual(all, tt.want) {
				t.Errorf("ids = %v, want %v", all, tt.want)
			}
			if !reflect.DeepEqual(src, before) {
				t.Error("Apply mutated its input")
			}
		})
	}
}

func TestCategoriesSorted(t *testing.T) {
	got := Categories(filterFixture())
	if !reflect.DeepEqual(got, []string{"home", "work"}) {
		t.Errorf("Categories = %v", got)
	}
}

func TestResolveDropPure(t *testing.T) {
	src := filterFixture()
	before := src.Clone()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task := src[tgmini.StatusCreated][0]

	next, moved := ResolveDrop(src, task, tgmini.StatusCreated, tgmini.StatusCompleted, now)
	if !moved {
		t.Fatal("expected a move")
	}
	if !reflect.DeepEqual(src, before) {
		t.Error("ResolveDrop mutated its input")
	}
	if !next.Consistent() || next.Len() != src.Len() {
		t.Error("result inconsistent")
	}
	got := next[tgmini.StatusCompleted]
	if last := got[len(got)-1]; last.ID != 1 || !last.CompletedAt.Equal(now) {
		t.Errorf("moved task = %+v", last)
	}

	for _, tc := range []struct {
		name           string
		source, target tgmini.TaskStatus
	}{
		{"same bucket", tgmini.StatusCreated, tgmini.StatusCreated},
		{"unknown target", tgmini.StatusCreated, "ARCHIVED"},
		{"wrong source", tgmini.StatusInProgress, tgmini.StatusCompleted},
	} {
		if _, moved := ResolveDrop(src, task, tc.source, tc.target, now); moved {
			t.Errorf("%s: moved", tc.name)
		}
	}
}
