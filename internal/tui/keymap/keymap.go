// Package keymap declares the key bindings of the bridge terminal app.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the full set of bindings. It implements help.KeyMap.
type KeyMap struct {
	Start  key.Binding
	Skip   key.Binding
	Replay key.Binding

	// Panels expand the console panel at the same index.
	Panels   []key.Binding
	Collapse key.Binding

	HealthDown key.Binding
	HealthUp   key.Binding

	Up      key.Binding
	Down    key.Binding
	Clear   key.Binding
	Deflect key.Binding

	Nudge   key.Binding
	Silence key.Binding
	Fault   key.Binding

	Stats key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// Default returns the default bindings. panels names the console panels in
// key order; the first nine get the digit keys.
func Default(panels []string) KeyMap {
	km := KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "engage"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip boot"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay boot"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close hologram"),
		),
		HealthDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "damage panel"),
		),
		HealthUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "repair panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev threat"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next threat"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear focus"),
		),
		Deflect: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "deflect threat"),
		),
		Nudge: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "ask nova"),
		),
		Silence: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "silence nova"),
		),
		Fault: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle fault"),
		),
		Stats: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	for i, id := range panels {
		if i >= 9 {
			break
		}
		digit := string(rune('1' + i))
		km.Panels = append(km.Panels, key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, id),
		))
	}
	return km
}

// PanelIndex returns the index of the panel binding matching the key string,
// or -1.
func (k KeyMap) PanelIndex(keyStr string) int {
	for i, b := range k.Panels {
		for _, bk := range b.Keys() {
			if bk == keyStr {
				return i
			}
		}
	}
	return -1
}

// ShortHelp returns the bindings shown in the collapsed help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Up, k.Down, k.Collapse, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Skip, k.Replay},
		append(append([]key.Binding{}, k.Panels...), k.Collapse, k.HealthDown, k.HealthUp),
		{k.Up, k.Down, k.Clear, k.Deflect},
		{k.Nudge, k.Silence, k.Fault, k.Stats, k.Help, k.Quit},
	}
}
