package quiz

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/benjamonnguyen/tgmini"
)

// FormatRemaining renders seconds as HH:MM:SS. Negative input shows as zero.
func FormatRemaining(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatDuration renders an attempt's length as "N min S sec".
func FormatDuration(d time.Duration) string {
	total := max(int(d.Seconds()), 0)
	return fmt.Sprintf("%d min %d sec", total/60, total%60)
}

type ScoreClass int

const (
	ScorePoor ScoreClass = iota
	ScoreFair
	ScoreGood
	ScoreExcellent
)

func ClassifyScore(percentage float64) ScoreClass {
	switch {
	case percentage >= 80:
		return ScoreExcellent
	case percentage >= 60:
		return ScoreGood
	case percentage >= 40:
		return ScoreFair
	default:
		return ScorePoor
	}
}

// FilterTests narrows the catalog by subject and a case-insensitive search
// over title and description. Empty arguments match everything.
func FilterTests(tests []tgmini.Test, subject, search string) []tgmini.Test {
	q := strings.ToLower(search)
	out := []tgmini.Test{}
	for _, t := range tests {
		if subject != "" && t.Subject != subject {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Subjects collects the distinct subjects of tests, sorted.
func Subjects(tests []tgmini.Test) []string {
	var subjects []string
	for _, t := range tests {
		if t.Subject != "" && !slices.Contains(subjects, t.Subject) {
			subjects = append(subjects, t.Subject)
		}
	}
	slices.Sort(subjects)
	return subjects
}
