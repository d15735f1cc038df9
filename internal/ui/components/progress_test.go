package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestStepperOneSegmentPerQuestion(t *testing.T) {
	s := Stepper{Label: "質問 2 / 5", Current: 1, Answered: []bool{true, false, false, false, false}, Width: 60}
	out := s.View()

	if !strings.Contains(out, "質問 2 / 5") {
		t.Error("missing label")
	}
	if got := lipgloss.Width(out); got > 60 {
		t.Errorf("width %d exceeds 60", got)
	}
	plain := stripStyles(out)
	if n := len(strings.Fields(strings.TrimPrefix(plain, "質問 2 / 5"))); n != 5 {
		t.Errorf("expected 5 segments, got %d in %q", n, plain)
	}
}

func TestStepperCollapsesWhenNarrow(t *testing.T) {
	answered := make([]bool, 20)
	out := Stepper{Current: 9, Answered: answered, Width: 24}.View()
	if strings.Contains(out, "━") {
		t.Error("expected a plain bar for 20 questions in 24 cells")
	}
	if got := lipgloss.Width(out); got != 24 {
		t.Errorf("bar width = %d, want 24", got)
	}
}

func TestStepperEmpty(t *testing.T) {
	if got := (Stepper{Label: "x", Width: 10}).View(); stripStyles(got) != "x  " {
		t.Errorf("got %q", got)
	}
}

func stripStyles(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
