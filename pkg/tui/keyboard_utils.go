package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// specialKeys lists the named keys understood by KeyEventFromString
var specialKeys = []string{"Escape", "Enter", "Tab", "Backspace", "Delete", "Space",
	"Up", "Down", "Left", "Right", "Home", "End", "PageUp", "PageDown",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"}

// KeyEventBuilder provides a fluent interface for creating KeyEvents
type KeyEventBuilder struct {
	event KeyEvent
}

// NewKeyEvent creates a new KeyEventBuilder for a regular character key
func NewKeyEvent(key rune) *KeyEventBuilder {
	return &KeyEventBuilder{
		event: KeyEvent{
			Key:       key,
			IsSpecial: false,
		},
	}
}

// NewSpecialKeyEvent creates a new KeyEventBuilder for a special key
func NewSpecialKeyEvent(special string) *KeyEventBuilder {
	return &KeyEventBuilder{
		event: KeyEvent{
			IsSpecial: true,
			Special:   special,
		},
	}
}

// WithCtrl adds the Ctrl modifier
func (b *KeyEventBuilder) WithCtrl() *KeyEventBuilder {
	b.event.Ctrl = true
	return b
}

// WithShift adds the Shift modifier
func (b *KeyEventBuilder) WithShift() *KeyEventBuilder {
	b.event.Shift = true
	return b
}

// WithAlt adds the Alt modifier
func (b *KeyEventBuilder) WithAlt() *KeyEventBuilder {
	b.event.Alt = true
	return b
}

// Build returns the constructed KeyEvent
func (b *KeyEventBuilder) Build() KeyEvent {
	return b.event
}

// KeyEventFromString parses a string representation of a key into a KeyEvent
// Examples: "j", "Ctrl-n", "Shift-Tab", "Escape", "Enter", "Ctrl-Alt-x"
func KeyEventFromString(s string) (KeyEvent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyEvent{}, fmt.Errorf("empty key string")
	}

	event := KeyEvent{}
	parts := strings.Split(s, "-")

	// Parse modifiers
	for i := 0; i < len(parts)-1; i++ {
		switch strings.ToLower(parts[i]) {
		case "ctrl", "control":
			event.Ctrl = true
		case "shift":
			event.Shift = true
		case "alt":
			event.Alt = true
		default:
			return KeyEvent{}, fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	keyPart := parts[len(parts)-1]

	for _, special := range specialKeys {
		if strings.EqualFold(keyPart, special) {
			if special == "Space" {
				event.Key = ' '
				return event, nil
			}
			event.IsSpecial = true
			event.Special = special
			return event, nil
		}
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		if guess, ok := closestSpecialKey(keyPart); ok {
			return KeyEvent{}, fmt.Errorf("invalid key: %s (did you mean %s?)", keyPart, guess)
		}
		return KeyEvent{}, fmt.Errorf("invalid key: %s", keyPart)
	}

	event.Key = runes[0]
	return event, nil
}

// closestSpecialKey suggests the named key nearest to a misspelled one
func closestSpecialKey(name string) (string, bool) {
	best, bestDist := "", max(1, len(name)/3)+1
	for _, special := range specialKeys {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(special)); d < bestDist {
			best, bestDist = special, d
		}
	}
	return best, best != ""
}

// FormatKeyEvent returns a human-readable string representation of a KeyEvent.
// The result parses back to an equivalent event with KeyEventFromString.
func FormatKeyEvent(event KeyEvent) string {
	parts := make([]string, 0, 4)

	if event.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if event.Alt {
		parts = append(parts, "Alt")
	}

	switch {
	case event.IsSpecial:
		if event.Shift {
			parts = append(parts, "Shift")
		}
		parts = append(parts, event.Special)
	case event.Key == ' ':
		parts = append(parts, "Space")
	case event.Shift && event.Key >= 'a' && event.Key <= 'z':
		// Show uppercase letters directly, not as Shift-x
		parts = append(parts, strings.ToUpper(string(event.Key)))
	default:
		parts = append(parts, string(event.Key))
	}

	return strings.Join(parts, "-")
}

// keyEventEquals compares two KeyEvents as the dispatcher would
func keyEventEquals(a, b KeyEvent) bool {
	return keyEventToString(a) == keyEventToString(b)
}

// HelpFormatter formats keybindings for display
type HelpFormatter struct {
	maxKeyWidth int
}

// NewHelpFormatter creates a new help formatter
func NewHelpFormatter() *HelpFormatter {
	return &HelpFormatter{
		maxKeyWidth: 15,
	}
}

// FormatBindings formats a list of keybindings into help text, sorted by key
func (hf *HelpFormatter) FormatBindings(bindings []*KeyBinding) string {
	if len(bindings) == 0 {
		return "No keybindings registered\n"
	}

	sorted := make([]*KeyBinding, len(bindings))
	copy(sorted, bindings)
	sort.Slice(sorted, func(i, j int) bool {
		return FormatKeyEvent(sorted[i].Key) < FormatKeyEvent(sorted[j].Key)
	})

	// Find max key width for alignment
	maxWidth := 0
	for _, binding := range sorted {
		keyStr := FormatKeyEvent(binding.Key)
		if len(keyStr) > maxWidth && len(keyStr) < hf.maxKeyWidth {
			maxWidth = len(keyStr)
		}
	}

	var sb strings.Builder
	for _, binding := range sorted {
		keyStr := FormatKeyEvent(binding.Key)
		pad := maxWidth - len(keyStr) + 2
		if pad < 1 {
			pad = 1
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\n", keyStr, strings.Repeat(" ", pad), binding.Label))
	}

	return sb.String()
}

// FormatByMode formats all bindings grouped by mode
func (hf *HelpFormatter) FormatByMode(allBindings map[Mode][]*KeyBinding) string {
	var sb strings.Builder

	for _, mode := range []Mode{ModeNormal, ModeInsert} {
		bindings, ok := allBindings[mode]
		if !ok || len(bindings) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("\n=== %s Mode ===\n\n", strings.ToUpper(string(mode))))
		sb.WriteString(hf.FormatBindings(bindings))
	}

	if globalBindings, ok := allBindings[ModeGlobal]; ok && len(globalBindings) > 0 {
		sb.WriteString("\n=== Global Bindings ===\n\n")
		sb.WriteString(hf.FormatBindings(globalBindings))
	}

	return sb.String()
}
