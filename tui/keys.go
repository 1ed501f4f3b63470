package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/user/vidcut-cli/tui/components"
)

type keyMap struct {
	Play        key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	SecondBack  key.Binding
	SecondFwd   key.Binding
	Home        key.Binding
	End         key.Binding
	Faster      key.Binding
	Slower      key.Binding

	Focus     key.Binding
	FocusBack key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding

	Bookmark       key.Binding
	DeleteBookmark key.Binding

	Mode     key.Binding
	Unit     key.Binding
	Accurate key.Binding
	SetStart key.Binding
	SetEnd   key.Binding
	Export   key.Binding
	Cancel   key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play / pause")),
		StepBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous frame")),
		StepForward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next frame")),
		SecondBack:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "back one second")),
		SecondFwd:   key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "forward one second")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first frame")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last frame")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),

		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		FocusBack: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / jump / edit")),

		Bookmark:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark frame")),
		DeleteBookmark: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete bookmark")),

		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle cut mode")),
		Unit:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "cycle duration unit")),
		Accurate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "fast / accurate seek")),
		SetStart: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start = current frame")),
		SetEnd:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end = current frame")),
		Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export clip")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel export")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpGroups() []components.HelpGroup {
	return []components.HelpGroup{
		{Title: "Playback", Bindings: []key.Binding{k.Play, k.StepBack, k.StepForward, k.SecondBack, k.SecondFwd, k.Home, k.End, k.Faster, k.Slower}},
		{Title: "Navigation", Bindings: []key.Binding{k.Focus, k.Up, k.Down, k.Select, k.Bookmark, k.DeleteBookmark}},
		{Title: "Cut", Bindings: []key.Binding{k.Mode, k.Unit, k.Accurate, k.SetStart, k.SetEnd, k.Export, k.Cancel}},
		{Title: "General", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}
