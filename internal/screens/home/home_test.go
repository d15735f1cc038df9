package home

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
)

func seeded(t *testing.T, ids ...string) *archive.Store {
	t.Helper()
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	store := archive.New(archive.NewMemoryMedium())
	for i, id := range ids {
		err := store.Save(context.Background(), gift.DiagnosticResult{
			ID:          id,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			Mode:        gift.ModeTechFit,
			Service:     gift.Service{Category: "データベース", ServiceName: fmt.Sprintf("Service %d", i)},
			Catchphrase: "c",
			AILetter:    "l",
			NextActions: []string{"a"},
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return store
}

func loaded(t *testing.T, store *archive.Store) *HomeScreen {
	t.Helper()
	h := New(&screen.Deps{Archive: store})
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	h.Update(cmd())
	return h
}

func TestInitLoadsOldestFirst(t *testing.T) {
	h := loaded(t, seeded(t, "a", "b", "c"))

	if len(h.results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(h.results))
	}
	if h.results[0].ID != "a" || h.results[2].ID != "c" {
		t.Errorf("expected oldest first, got %s..%s", h.results[0].ID, h.results[2].ID)
	}
}

func TestTreeShowsOneGlyphPerResult(t *testing.T) {
	h := loaded(t, seeded(t, "a", "b"))
	view := h.View(100, 40)

	for _, id := range []string{"a", "b"} {
		if icon := gift.GiftGlyph(id).Icon; !strings.Contains(view, icon) {
			t.Errorf("expected glyph %s for %s", icon, id)
		}
	}
	if strings.Contains(view, "まだギフトはありません") {
		t.Error("empty notice shown with results present")
	}
	if !strings.Contains(view, "本サービスはユーザー識別情報") {
		t.Error("expected privacy note")
	}
}

func TestTreeEmpty(t *testing.T) {
	h := loaded(t, seeded(t))
	view := h.View(100, 40)

	if !strings.Contains(view, "まだギフトはありません") {
		t.Error("expected empty notice")
	}
	if !strings.Contains(view, "診断を始める") {
		t.Error("expected menu")
	}
}

func TestCompactHidesTree(t *testing.T) {
	h := loaded(t, seeded(t))
	if strings.Contains(h.View(100, 20), "まだギフトはありません") {
		t.Error("tree drawn on a short terminal")
	}
}

func TestStartPushesModeSelect(t *testing.T) {
	h := loaded(t, seeded(t))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if got := push.Screen.Title(); got != "診断モード" {
		t.Errorf("pushed %q", got)
	}
}

func TestArchiveEntryPushesArchive(t *testing.T) {
	h := loaded(t, seeded(t))

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if c, ok := push.Screen.(screen.Closer); ok {
		c.Close()
	}
	if got := push.Screen.Title(); got != "過去の診断結果" {
		t.Errorf("pushed %q", got)
	}
}

func TestRefreshReloads(t *testing.T) {
	store := seeded(t, "a")
	h := loaded(t, store)

	if err := store.Save(context.Background(), gift.DiagnosticResult{
		ID:          "b",
		Timestamp:   time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC),
		Mode:        gift.ModeTechFit,
		Service:     gift.Service{Category: "データベース", ServiceName: "Amazon DynamoDB"},
		Catchphrase: "c",
		AILetter:    "l",
		NextActions: []string{"a"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	h.Update(h.Refresh()())

	if len(h.results) != 2 {
		t.Errorf("expected 2 results after refresh, got %d", len(h.results))
	}
}

func TestNoArchive(t *testing.T) {
	h := New(&screen.Deps{})
	if h.Init() != nil {
		t.Error("expected no load without an archive")
	}
	if !strings.Contains(h.View(100, 40), "まだギフトはありません") {
		t.Error("expected empty notice")
	}
}
