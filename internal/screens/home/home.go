package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/screens/history"
	"github.com/abhisek/triviaz/internal/screens/play"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

const usernameLimit = 24

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Play   play.Deps
	Events store.EventRepo
}

type statsLoadedMsg struct {
	Answered int
	Correct  int
	Err      error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	askingName bool
	nameInput  components.TextInput

	answered int
	correct  int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeHandler = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START QUIZ", Action: h.start},
		{Label: "HISTORY", Disabled: deps.Events == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Events)}
			}
		}},
		{Label: "EXIT GAME", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

// start opens the quiz, asking for a name first when none is configured.
func (h *HomeScreen) start() tea.Cmd {
	if h.deps.Play.Config.Username == "" {
		h.askingName = true
		h.nameInput = components.NewTextInput("Your name (optional)", usernameLimit)
		return h.nameInput.Init()
	}
	return h.pushPlay()
}

func (h *HomeScreen) pushPlay() tea.Cmd {
	deps := h.deps.Play
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(deps)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		acc, err := repo.AccuracyByDifficulty(context.Background())
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		var msg statsLoadedMsg
		for _, a := range acc {
			msg.Answered += a.Answered
			msg.Correct += a.Correct
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		if m.Err == nil {
			h.answered, h.correct = m.Answered, m.Correct
		}
		return h, nil
	}

	if _, ok := msg.(screen.ResumedMsg); ok {
		return h, h.loadStats()
	}

	if h.askingName {
		return h.updateName(msg)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateName(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			h.askingName = false
			return h, nil
		case "enter":
			name := h.nameInput.Value()
			if strings.ContainsAny(name, "<>\"'`") {
				h.nameInput.Reject("letters, digits and spaces only")
				return h, nil
			}
			h.askingName = false
			h.deps.Play.Config.Username = name
			return h, h.pushPlay()
		}
	}
	var cmd tea.Cmd
	h.nameInput, cmd = h.nameInput.Update(msg)
	return h, cmd
}

// HandlesEscape keeps Esc for cancelling the name prompt.
func (h *HomeScreen) HandlesEscape() bool {
	return h.askingName
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.askingName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Play"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-3", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.answered, h.correct, h.deps.Play.Bank.Name(), h.deps.Play.Config.Username, cw, compact))

	if h.askingName {
		sections = append(sections, renderNamePrompt(h.nameInput.View(), cw))
	} else if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
