package keybind

import (
	"strings"

	"github.com/gdamore/tcell/v3"
)

// modifierOrder is the order modifiers appear in normalized keys.
var modifierOrder = []string{"ctrl", "alt", "shift", "meta"}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

var aliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"backtab":  "shift+tab",
}

func normalizeKeys(keys []string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" {
			normalized = append(normalized, key)
		}
	}
	return normalized
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if key == "+" {
		return key
	}

	// "ctrl-x" is accepted as a spelling of "ctrl+x".
	if lower := strings.ToLower(key); strings.HasPrefix(lower, "ctrl-") || strings.HasPrefix(lower, "control-") {
		key = "ctrl+" + key[strings.IndexByte(key, '-')+1:]
	}

	mods := make(map[string]bool, len(modifierOrder))
	var primary string
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
		case "ctrl", "control":
			mods["ctrl"] = true
		case "alt", "shift", "meta":
			mods[strings.ToLower(part)] = true
		default:
			primary = normalizePrimary(part)
		}
	}
	if primary == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(primary, "shift+"); ok {
		mods["shift"] = true
		primary = rest
	}
	if len(mods) > 0 && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}
	return join(mods, primary)
}

func normalizePrimary(key string) string {
	if inner, ok := strings.CutPrefix(key, "Rune["); ok && strings.HasSuffix(inner, "]") && len(inner) > 1 {
		return inner[:len(inner)-1]
	}
	if len([]rune(key)) == 1 {
		return key
	}
	key = strings.ToLower(key)
	if alias, ok := aliases[key]; ok {
		return alias
	}
	return key
}

func join(mods map[string]bool, primary string) string {
	var b strings.Builder
	for _, mod := range modifierOrder {
		if mods[mod] {
			b.WriteString(mod)
			b.WriteByte('+')
		}
	}
	b.WriteString(primary)
	return b.String()
}

// eventKeyString returns the normalized key of event.
func eventKeyString(event *tcell.EventKey) string {
	if event == nil {
		return ""
	}

	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary, ok := keyNames[key]
	if !ok && key == tcell.KeyRune {
		primary = event.Str()
	}
	if primary == "" {
		return normalizeKey(event.Name())
	}

	mods := make(map[string]bool, len(modifierOrder))
	modifiers := event.Modifiers()
	mods["ctrl"] = modifiers&tcell.ModCtrl != 0
	mods["alt"] = modifiers&tcell.ModAlt != 0
	mods["meta"] = modifiers&tcell.ModMeta != 0
	// Shifted runes arrive as the shifted character.
	mods["shift"] = modifiers&tcell.ModShift != 0 && key != tcell.KeyRune
	if rest, ok := strings.CutPrefix(primary, "shift+"); ok {
		mods["shift"] = true
		primary = rest
	}
	if (mods["ctrl"] || mods["alt"] || mods["meta"]) && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}
	return join(mods, primary)
}
