package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the highlighted entry of a vertical menu. Navigation wraps and
// skips disabled entries; digits 1-9 jump to an entry and activate it.
// Rendering is left to the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu highlights the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Label
	}
	return out
}

// IsDisabled reports whether item i cannot be chosen.
func (m Menu) IsDisabled(i int) bool {
	return i < 0 || i >= len(m.Items) || m.Items[i].Disabled
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if !m.IsDisabled(i) {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// move steps to the next enabled item in direction dir, wrapping around.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if m.IsDisabled(i) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}
