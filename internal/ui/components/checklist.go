package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

// ToggleChoiceMsg asks the owner of a CheckList to flip the mark on a choice.
type ToggleChoiceMsg struct {
	Index  int
	Choice string
}

// CheckList renders answer choices as checkboxes. Marks are owned by the
// caller and passed in with SetChoices; the list only tracks the cursor.
type CheckList struct {
	Choices []string
	Marked  []bool
	Cursor  int
}

// NewCheckList creates a check list with nothing marked.
func NewCheckList(choices []string) CheckList {
	return CheckList{
		Choices: choices,
		Marked:  make([]bool, len(choices)),
	}
}

// SetChoices replaces the rows. The cursor resets when the choices change.
func (c CheckList) SetChoices(choices []string, marked []bool) CheckList {
	if !sameChoices(c.Choices, choices) {
		c.Cursor = 0
	}
	c.Choices = choices
	c.Marked = make([]bool, len(choices))
	copy(c.Marked, marked)
	if c.Cursor >= len(choices) {
		c.Cursor = 0
	}
	return c
}

// Update moves the cursor and emits ToggleChoiceMsg on space or a digit.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Choices) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		return c, c.toggle(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Choices) {
				c.Cursor = i
				return c, c.toggle(i)
			}
		}
	}
	return c, nil
}

func (c CheckList) toggle(i int) tea.Cmd {
	msg := ToggleChoiceMsg{Index: i, Choice: c.Choices[i]}
	return func() tea.Msg { return msg }
}

// MarkedCount returns the number of marked rows.
func (c CheckList) MarkedCount() int {
	n := 0
	for _, m := range c.Marked {
		if m {
			n++
		}
	}
	return n
}

// View renders the list.
func (c CheckList) View() string {
	var s string
	for i, choice := range c.Choices {
		box := "☐"
		if i < len(c.Marked) && c.Marked[i] {
			box = "☑"
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s %s", prefix, i+1, box, choice)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Cursor:
			style = theme.Selected
		case i < len(c.Marked) && c.Marked[i]:
			style = theme.Checked
		}
		s += style.Render(line) + "\n"
	}
	return s
}

func sameChoices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
