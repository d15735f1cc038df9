package modeselect

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
)

func TestListsEveryMode(t *testing.T) {
	view := New(&screen.Deps{}).View(100, 40)
	for _, m := range gift.AllModes() {
		if !strings.Contains(view, m.Title()) {
			t.Errorf("missing mode %s", m)
		}
	}
}

func TestCursorMovesSelection(t *testing.T) {
	s := New(&screen.Deps{})
	if s.Selected() != gift.ModeTechFit {
		t.Fatalf("expected %s first, got %s", gift.ModeTechFit, s.Selected())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Selected() != gift.ModeAdventure {
		t.Errorf("expected %s, got %s", gift.ModeAdventure, s.Selected())
	}
}

func TestEnterPushesVolumeSelect(t *testing.T) {
	s := New(&screen.Deps{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if got := push.Screen.Title(); got != "診断ボリューム" {
		t.Errorf("pushed %q", got)
	}
	if !strings.Contains(push.Screen.View(100, 40), gift.ModeTechFit.Title()) {
		t.Error("volume screen should name the chosen mode")
	}
}
