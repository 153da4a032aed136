package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) {
		t.Error("79 columns should be too small")
	}
	if !IsTooSmall(100, 23) {
		t.Error("23 rows should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestBodyHeight(t *testing.T) {
	header := "a\nb\nc"
	footer := "d\ne\nf"
	if got := BodyHeight(header, footer, 30); got != 24 {
		t.Errorf("BodyHeight = %d, want 24", got)
	}
	if got := BodyHeight(header, footer, 2); got != 0 {
		t.Errorf("BodyHeight = %d, want 0", got)
	}
}

func TestRenderHeaderStatus(t *testing.T) {
	out := RenderHeader("Play", Status{Username: "ada", Score: 3, Answered: 5, Difficulty: "medium"}, 100)

	for _, want := range []string{"Triviaz", "Play", "@ada", "★ 3/5", "◆ medium"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHeaderWithoutStatus(t *testing.T) {
	out := RenderHeader("Home", Status{}, 100)
	if strings.Contains(out, "★") {
		t.Errorf("empty status should not render a score:\n%s", out)
	}
}

func TestRenderFooterHints(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}, 80)
	for _, want := range []string{"Enter", "Submit", "Esc", "Quit", "·"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q:\n%s", want, out)
		}
	}
}

func TestStatusIsZero(t *testing.T) {
	if !(Status{}).IsZero() {
		t.Error("empty status should be zero")
	}
	if (Status{Answered: 1}).IsZero() {
		t.Error("status with answers is not zero")
	}
}
