// Package keybind maps terminal key events to application actions.
//
// Keys are written the way they are displayed, for example "up", "pgdn",
// "ctrl+d", "shift+tab" or "G". Spellings such as "PageDown", "Control-D" or
// "Rune[g]" are normalized when a binding is created.
package keybind

import (
	"slices"

	"github.com/gdamore/tcell/v3"
)

// Help is the help text of a binding.
type Help struct {
	Key  string
	Desc string
}

// Keybind is a set of keys with help text.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Option configures a Keybind.
type Option func(*Keybind)

// NewKeybind returns a binding configured by options.
func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the bound keys.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys)
	}
}

// WithHelp sets the help text.
func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// Keys returns the normalized keys.
func (k Keybind) Keys() []string {
	return k.keys
}

// Help returns the help text.
func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether the binding matches events.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

// SetEnabled enables or disables the binding.
func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled bindings.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	key := eventKeyString(event)
	if key == "" {
		return false
	}
	for _, k := range keybinds {
		if k.Enabled() && slices.Contains(k.keys, key) {
			return true
		}
	}
	return false
}

// Map binds actions to keys. The first binding matching an event wins.
type Map[A comparable] struct {
	actions  []A
	keybinds []Keybind
}

// Bind adds or replaces the binding of action.
func (m *Map[A]) Bind(action A, k Keybind) *Map[A] {
	if i := slices.Index(m.actions, action); i >= 0 {
		m.keybinds[i] = k
		return m
	}
	m.actions = append(m.actions, action)
	m.keybinds = append(m.keybinds, k)
	return m
}

// Keybind returns the binding of action.
func (m *Map[A]) Keybind(action A) (Keybind, bool) {
	if i := slices.Index(m.actions, action); i >= 0 {
		return m.keybinds[i], true
	}
	return Keybind{}, false
}

// Action returns the action bound to the key of event.
func (m *Map[A]) Action(event *tcell.EventKey) (A, bool) {
	for i, k := range m.keybinds {
		if Matches(event, k) {
			return m.actions[i], true
		}
	}
	var zero A
	return zero, false
}

// Keybinds returns the bindings in the order they were added.
func (m *Map[A]) Keybinds() []Keybind {
	return slices.Clone(m.keybinds)
}
