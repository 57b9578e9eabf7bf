// Package keymap defines keybindings for the TUI.
package keymap

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// MaxSamples is the number of sample queries reachable from the keyboard.
const MaxSamples = 9

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns focus to the query input.
	Back key.Binding

	// Search submits the query.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	// NewSearch clears the form.
	NewSearch key.Binding

	// Limit cycles through the result limit options.
	Limit key.Binding

	// Settings opens the settings editor.
	Settings key.Binding

	// Samples run the configured sample queries, alt+1 to alt+9.
	Samples []key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	samples := make([]key.Binding, MaxSamples)
	for i := range samples {
		n := strconv.Itoa(i + 1)
		samples[i] = key.NewBinding(
			key.WithKeys("alt+"+n),
			key.WithHelp("alt+"+n, "sample "+n),
		)
	}

	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "edit query"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Limit: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "limit"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Samples: samples,
	}
}

// ShortHelp returns the bindings shown while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Limit, k.Samples[0]}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Down, k.Back, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Limit, k.Samples[0]},
		{k.Up, k.Down, k.NewSearch, k.Back},
		{k.Settings, k.Help, k.Quit},
	}
}

// SampleIndex returns the sample slot bound to keyStr, or -1.
func (k *KeyMap) SampleIndex(keyStr string) int {
	for i, b := range k.Samples {
		if Matches(keyStr, b) {
			return i
		}
	}
	return -1
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
