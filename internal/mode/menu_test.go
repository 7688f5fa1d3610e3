package mode

import (
	"strings"
	"testing"

	"github.com/krakenpi/krakenpi/internal/theme"
)

func labelled(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Label: string(rune('a' + i))}
	}
	return items
}

func TestMenuCursorClamps(t *testing.T) {
	m := NewMenu(3)
	m.SetItems(labelled(4))

	if m.MoveUp() {
		t.Fatal("cursor moved above the first row")
	}
	for i := 0; i < 10; i++ {
		m.MoveDown()
	}
	if m.Cursor != 3 {
		t.Fatalf("cursor = %d", m.Cursor)
	}
	if m.MoveDown() {
		t.Fatal("cursor moved past the last row")
	}
}

func TestMenuViewportFollowsCursor(t *testing.T) {
	m := NewMenu(3)
	m.SetItems(labelled(6))

	for i := 0; i < 4; i++ {
		m.MoveDown()
	}
	if m.ViewportOffset != 2 {
		t.Fatalf("offset after scrolling down = %d", m.ViewportOffset)
	}
	for i := 0; i < 4; i++ {
		m.MoveUp()
	}
	if m.ViewportOffset != 0 {
		t.Fatalf("offset after scrolling back = %d", m.ViewportOffset)
	}
}

func TestMenuSetItemsKeepsCursorInRange(t *testing.T) {
	m := NewMenu(3)
	m.SetItems(labelled(6))
	for i := 0; i < 5; i++ {
		m.MoveDown()
	}
	m.SetItems(labelled(2))
	if m.Cursor != 1 {
		t.Fatalf("cursor after shrink = %d", m.Cursor)
	}
	m.SetItems(nil)
	if m.Cursor != 0 {
		t.Fatalf("cursor after empty = %d", m.Cursor)
	}
}

func TestMenuInvokeSelected(t *testing.T) {
	m := NewMenu(3)
	invoked := ""
	m.SetItems([]Item{
		{Label: "first", Invoke: func() { invoked = "first" }},
		{Label: "second", Invoke: func() { invoked = "second" }},
	})
	m.MoveDown()
	m.InvokeSelected()
	if invoked != "second" {
		t.Fatalf("invoked = %q", invoked)
	}
}

func TestMenuRenderShowsWindow(t *testing.T) {
	m := NewMenu(2)
	m.SetItems([]Item{{Label: "alpha"}, {Label: "beta"}, {Label: "gamma"}})
	out := m.Render(theme.Default(), 40)
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Fatalf("visible rows missing:\n%s", out)
	}
	if strings.Contains(out, "gamma") {
		t.Fatalf("row outside viewport rendered:\n%s", out)
	}
	if !strings.Contains(out, "more") {
		t.Fatalf("overflow marker missing:\n%s", out)
	}
}

func TestMenuRenderEmpty(t *testing.T) {
	m := NewMenu(3)
	out := m.Render(theme.Default(), 40)
	if !strings.Contains(out, "empty") {
		t.Fatalf("empty placeholder missing: %q", out)
	}
}
