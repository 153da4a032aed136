package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// column is one fixed-width column of a CLI table. Right-aligned columns
// are used for counts.
type column struct {
	title string
	width int
	right bool
}

type table struct {
	out  io.Writer
	cols []column
}

func newTable(out io.Writer, cols ...column) *table {
	return &table{out: out, cols: cols}
}

func (t *table) width() int {
	w := 0
	for i, c := range t.cols {
		if i > 0 {
			w += 2
		}
		w += c.width
	}
	return w
}

// header prints the column titles framed by rules.
func (t *table) header() {
	titles := make([]any, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.title
	}
	t.row(titles...)
	t.rule()
}

func (t *table) rule() {
	fmt.Fprintln(t.out, strings.Repeat("─", t.width()))
}

// row prints one line. Values are formatted with %v and cut to the column
// width; the last column is never cut.
func (t *table) row(vals ...any) {
	cells := make([]string, len(t.cols))
	for i, c := range t.cols {
		var s string
		if i < len(vals) {
			s = fmt.Sprint(vals[i])
		}
		if i == len(t.cols)-1 && !c.right {
			cells[i] = s
			continue
		}
		s = truncate(s, c.width)
		pad := strings.Repeat(" ", c.width-utf8.RuneCountInString(s))
		if c.right {
			cells[i] = pad + s
		} else {
			cells[i] = s + pad
		}
	}
	fmt.Fprintln(t.out, strings.TrimRight(strings.Join(cells, "  "), " "))
}

// truncate cuts s to max runes.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
