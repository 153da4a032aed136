package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestCheckListCursorMoves(t *testing.T) {
	c := NewCheckList([]string{"a", "b", "c"})

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", c.Cursor)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if c.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", c.Cursor)
	}
}

func TestCheckListSpaceToggles(t *testing.T) {
	c := NewCheckList([]string{"a", "b"})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	msg, ok := cmd().(ToggleChoiceMsg)
	if !ok {
		t.Fatalf("expected ToggleChoiceMsg, got %T", cmd())
	}
	if msg.Index != 1 || msg.Choice != "b" {
		t.Errorf("toggle = %+v, want index 1 choice b", msg)
	}
}

func TestCheckListDigitToggles(t *testing.T) {
	c := NewCheckList([]string{"a", "b", "c"})

	c, cmd := c.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	if msg := cmd().(ToggleChoiceMsg); msg.Choice != "c" {
		t.Errorf("toggled %q, want c", msg.Choice)
	}
	if c.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", c.Cursor)
	}

	_, cmd = c.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if cmd != nil {
		t.Error("digit past the last choice should do nothing")
	}
}

func TestCheckListSetChoicesResetsCursor(t *testing.T) {
	c := NewCheckList([]string{"a", "b"})
	c.Cursor = 1

	c = c.SetChoices([]string{"a", "b"}, []bool{true, false})
	if c.Cursor != 1 {
		t.Error("same choices should keep the cursor")
	}
	if c.MarkedCount() != 1 {
		t.Errorf("marked = %d, want 1", c.MarkedCount())
	}

	c = c.SetChoices([]string{"x", "y", "z"}, nil)
	if c.Cursor != 0 {
		t.Error("new choices should reset the cursor")
	}
	if c.MarkedCount() != 0 {
		t.Error("new choices should start unmarked")
	}
}

func TestCheckListView(t *testing.T) {
	c := NewCheckList([]string{"Paris", "Rome"}).SetChoices([]string{"Paris", "Rome"}, []bool{false, true})
	out := c.View()

	if !strings.Contains(out, "☐ Paris") {
		t.Errorf("expected unchecked Paris:\n%s", out)
	}
	if !strings.Contains(out, "☑ Rome") {
		t.Errorf("expected checked Rome:\n%s", out)
	}
	if !strings.Contains(out, "▸ 1.") {
		t.Errorf("expected cursor on first row:\n%s", out)
	}
}
