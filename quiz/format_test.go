package quiz

import (
	"reflect"
	"testing"
	"time"

	"github.com/benjamonnguyen/tgmini"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{5, "00:00:05"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{36061, "10:01:01"},
		{-1, "00:00:00"},
		{-3600, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.seconds); got != tt.want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 min 0 sec"},
		{75 * time.Second, "1 min 15 sec"},
		{20*time.Minute + 500*time.Millisecond, "20 min 0 sec"},
		{-time.Second, "0 min 0 sec"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		pct  float64
		want ScoreClass
	}{
		{100, ScoreExcellent},
		{80, ScoreExcellent},
		{79.9, ScoreGood},
		{60, ScoreGood},
		{40, ScoreFair},
		{39.5, ScorePoor},
		{0, ScorePoor},
	}
	for _, tt := range tests {
		if got := ClassifyScore(tt.pct); got != tt.want {
			t.Errorf("ClassifyScore(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestFilterTests(t *testing.T) {
	tests := []tgmini.Test{
		{ID: 1, Title: "Algebra I", Subject: "math", Description: "linear equations"},
		{ID: 2, Title: "Mechanics", Subject: "physics", Description: "Newton and EQUATIONS of motion"},
		{ID: 3, Title: "Geometry", Subject: "math"},
	}
	cases := []struct {
		name, subject, search string
		want                  []int
	}{
		{"all", "", "", []int{1, 2, 3}},
		{"subject", "math", "", []int{1, 3}},
		{"search description", "", "equations", []int{1, 2}},
		{"subject and search", "physics", "equations", []int{2}},
		{"search keeps surrounding spaces", "", "geometry ", []int{}},
		{"nothing", "chemistry", "", []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := []int{}
			for _, tt := range FilterTests(tests, tc.subject, tc.search) {
				got = append(got, tt.ID)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ids = %v, want %v", got, tc.want)
			}
		})
	}

	if got := Subjects(tests); !reflect.DeepEqual(got, []string{"math", "physics"}) {
		t.Errorf("Subjects = %v", got)
	}
}
