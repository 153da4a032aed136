package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/screen"
)

// fakeScreen records lifecycle calls made by the router.
type fakeScreen struct {
	name   string
	inits  int
	closes int
	got    []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return "view:" + f.name }
func (f *fakeScreen) Title() string        { return f.name }
func (f *fakeScreen) Close()               { f.closes++ }

// titles lists the stack from bottom to top.
func titles(r *Router) string {
	names := make([]string, len(r.stack))
	for i, s := range r.stack {
		names[i] = s.Title()
	}
	return strings.Join(names, ">")
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name  string
		steps func(r *Router, screens map[string]*fakeScreen)
		want  string
	}{
		{
			name: "push play",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Push(s["play"])
			},
			want: "home>play",
		},
		{
			name: "push then pop",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Push(s["play"])
				r.Pop()
			},
			want: "home",
		},
		{
			name: "pop at root keeps root",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Pop()
				r.Pop()
			},
			want: "home",
		},
		{
			name: "replace play with summary",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Push(s["play"])
				r.Replace(s["summary"])
			},
			want: "home>summary",
		},
		{
			name: "messages drive the stack",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Update(PushScreenMsg{Screen: s["play"]})
				r.Update(ReplaceScreenMsg{Screen: s["summary"]})
				r.Update(PushScreenMsg{Screen: s["history"]})
			},
			want: "home>summary>history",
		},
		{
			name: "pop to root",
			steps: func(r *Router, s map[string]*fakeScreen) {
				r.Push(s["play"])
				r.Push(s["summary"])
				r.Update(PopToRootMsg{})
			},
			want: "home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screens := map[string]*fakeScreen{}
			for _, n := range []string{"home", "play", "summary", "history"} {
				screens[n] = &fakeScreen{name: n}
			}
			r := New(screens["home"])
			tt.steps(r, screens)

			if got := titles(r); got != tt.want {
				t.Errorf("stack = %q, want %q", got, tt.want)
			}
			if r.Depth() != strings.Count(tt.want, ">")+1 {
				t.Errorf("depth = %d for stack %q", r.Depth(), tt.want)
			}
		})
	}
}

func TestPushAndReplaceInitScreen(t *testing.T) {
	play := &fakeScreen{name: "play"}
	summary := &fakeScreen{name: "summary"}
	r := New(&fakeScreen{name: "home"})

	r.Push(play)
	r.Replace(summary)

	if play.inits != 1 || summary.inits != 1 {
		t.Errorf("inits play=%d summary=%d, want 1 each", play.inits, summary.inits)
	}
}

func TestScreensClosedWhenLeavingStack(t *testing.T) {
	home := &fakeScreen{name: "home"}
	play := &fakeScreen{name: "play"}
	summary := &fakeScreen{name: "summary"}
	r := New(home)

	r.Push(play)
	r.Replace(summary)
	if play.closes != 1 {
		t.Errorf("replaced play closed %d times, want 1", play.closes)
	}

	r.Update(PopScreenMsg{})
	if summary.closes != 1 {
		t.Errorf("popped summary closed %d times, want 1", summary.closes)
	}
	if home.closes != 0 {
		t.Error("root closed while still on the stack")
	}

	r.CloseAll()
	if home.closes != 1 {
		t.Errorf("CloseAll closed home %d times, want 1", home.closes)
	}
}

func TestReplaceWithSameScreenKeepsItOpen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)

	r.Replace(home)

	if home.closes != 0 {
		t.Errorf("screen closed %d times on self-replace", home.closes)
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	play := &fakeScreen{name: "play"}
	r := New(home)
	r.Push(play)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if len(play.got) != 1 || len(home.got) != 0 {
		t.Errorf("messages home=%d play=%d, want 0 and 1", len(home.got), len(play.got))
	}
	if v := r.View(80, 24); v != "view:play" {
		t.Errorf("View = %q", v)
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Push(&fakeScreen{name: "play"})

	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("pop returned no resume command")
	}
	if _, ok := cmd().(screen.ResumedMsg); !ok {
		t.Errorf("resume command produced %T", cmd())
	}
	if r.Pop() != nil {
		t.Error("pop at the root should not resume anything")
	}
	if r.PopToRoot() != nil {
		t.Error("pop to root at the root should not resume anything")
	}
}
