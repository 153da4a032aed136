package quiz

import "slices"

// Selection is the set of choices currently marked by the player, kept in
// the order they were marked.
type Selection struct {
	marked []string
}

// Toggle flips the mark on choice.
func (s *Selection) Toggle(choice string) {
	s.Set(choice, !s.Has(choice))
}

// Set marks or unmarks choice.
func (s *Selection) Set(choice string, marked bool) {
	i := slices.Index(s.marked, choice)
	switch {
	case marked && i < 0:
		s.marked = append(s.marked, choice)
	case !marked && i >= 0:
		s.marked = slices.Delete(s.marked, i, i+1)
	}
}

// Has reports whether choice is marked.
func (s *Selection) Has(choice string) bool {
	return slices.Contains(s.marked, choice)
}

// Count returns the number of marked choices.
func (s *Selection) Count() int { return len(s.marked) }

// Values returns a copy of the marked choices.
func (s *Selection) Values() []string { return slices.Clone(s.marked) }

// Clear unmarks everything.
func (s *Selection) Clear() { s.marked = s.marked[:0] }

// CanSubmit reports whether exactly one choice is marked.
func (s *Selection) CanSubmit() bool { return len(s.marked) == 1 }

// Only returns the single marked choice when CanSubmit holds.
func (s *Selection) Only() (string, bool) {
	if len(s.marked) != 1 {
		return "", false
	}
	return s.marked[0], true
}
