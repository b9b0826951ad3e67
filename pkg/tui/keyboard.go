package tui

import (
	"fmt"
	"sync"
)

// Mode represents the current keyboard input mode
type Mode string

const (
	// ModeNormal is the default navigation mode
	ModeNormal Mode = "normal"
	// ModeInsert is the text entry mode; a Binder may bind its triggers here
	ModeInsert Mode = "insert"
	// ModeGlobal groups bindings that work in every mode
	ModeGlobal Mode = "global"
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Key       rune   // The character pressed
	Ctrl      bool   // Ctrl modifier
	Shift     bool   // Shift modifier
	Alt       bool   // Alt modifier
	IsSpecial bool   // Whether this is a special key
	Special   string // Special key name (Enter, Escape, Tab, etc.)
}

// IsZero returns true for the zero KeyEvent, which matches no key
func (e KeyEvent) IsZero() bool {
	return e == KeyEvent{}
}

// String returns the human-readable key name, e.g. "Shift-Tab" or "Ctrl-n"
func (e KeyEvent) String() string {
	return FormatKeyEvent(e)
}

// KeyHandler is a function that handles a key event
type KeyHandler func(event KeyEvent) error

// KeyBinding represents a registered keybinding
type KeyBinding struct {
	Key      KeyEvent
	Handler  KeyHandler
	Mode     Mode
	IsGlobal bool   // If true, works in all modes
	Label    string // Description for help text
}

// KeyboardHandler dispatches key events to mode-specific and global bindings
type KeyboardHandler struct {
	mu sync.RWMutex

	// Current mode
	currentMode Mode

	// Keybindings registry organized by mode
	bindings map[Mode]map[string]*KeyBinding

	// Global bindings that work in any mode
	globalBindings map[string]*KeyBinding
}

// NewKeyboardHandler creates a keyboard handler in normal mode with no bindings
func NewKeyboardHandler() *KeyboardHandler {
	kh := &KeyboardHandler{
		currentMode:    ModeNormal,
		bindings:       make(map[Mode]map[string]*KeyBinding),
		globalBindings: make(map[string]*KeyBinding),
	}

	for _, mode := range []Mode{ModeNormal, ModeInsert} {
		kh.bindings[mode] = make(map[string]*KeyBinding)
	}

	return kh
}

// SetMode changes the current input mode
func (kh *KeyboardHandler) SetMode(mode Mode) {
	kh.mu.Lock()
	defer kh.mu.Unlock()

	kh.currentMode = mode
}

// GetMode returns the current input mode
func (kh *KeyboardHandler) GetMode() Mode {
	kh.mu.RLock()
	defer kh.mu.RUnlock()

	return kh.currentMode
}

// RegisterBinding registers a new keybinding for a specific mode.
// ModeGlobal is accepted and behaves like RegisterGlobalBinding.
func (kh *KeyboardHandler) RegisterBinding(mode Mode, key KeyEvent, handler KeyHandler, label string) error {
	if mode == ModeGlobal {
		return kh.RegisterGlobalBinding(key, handler, label)
	}
	if key.IsZero() {
		return fmt.Errorf("cannot bind empty key in %s mode", mode)
	}

	kh.mu.Lock()
	defer kh.mu.Unlock()

	keyStr := keyEventToString(key)

	modeBindings, ok := kh.bindings[mode]
	if !ok {
		modeBindings = make(map[string]*KeyBinding)
		kh.bindings[mode] = modeBindings
	}

	// Check for conflicts in the same mode
	if _, exists := modeBindings[keyStr]; exists {
		return fmt.Errorf("keybinding conflict: %s already registered in %s mode", keyStr, mode)
	}

	modeBindings[keyStr] = &KeyBinding{
		Key:      key,
		Handler:  handler,
		Mode:     mode,
		IsGlobal: false,
		Label:    label,
	}

	return nil
}

// RegisterGlobalBinding registers a keybinding that works in all modes
func (kh *KeyboardHandler) RegisterGlobalBinding(key KeyEvent, handler KeyHandler, label string) error {
	if key.IsZero() {
		return fmt.Errorf("cannot bind empty global key")
	}

	kh.mu.Lock()
	defer kh.mu.Unlock()

	keyStr := keyEventToString(key)

	// Check for conflicts
	if _, exists := kh.globalBindings[keyStr]; exists {
		return fmt.Errorf("global keybinding conflict: %s already registered", keyStr)
	}

	kh.globalBindings[keyStr] = &KeyBinding{
		Key:      key,
		Handler:  handler,
		Mode:     ModeGlobal,
		IsGlobal: true,
		Label:    label,
	}

	return nil
}

// UnregisterBinding removes a keybinding from a specific mode
func (kh *KeyboardHandler) UnregisterBinding(mode Mode, key KeyEvent) {
	if mode == ModeGlobal {
		kh.UnregisterGlobalBinding(key)
		return
	}

	kh.mu.Lock()
	defer kh.mu.Unlock()

	delete(kh.bindings[mode], keyEventToString(key))
}

// UnregisterGlobalBinding removes a global keybinding
func (kh *KeyboardHandler) UnregisterGlobalBinding(key KeyEvent) {
	kh.mu.Lock()
	defer kh.mu.Unlock()

	delete(kh.globalBindings, keyEventToString(key))
}

// lookup finds the binding for event: global bindings win over mode bindings
func (kh *KeyboardHandler) lookup(event KeyEvent) *KeyBinding {
	kh.mu.RLock()
	defer kh.mu.RUnlock()

	keyStr := keyEventToString(event)

	if binding, exists := kh.globalBindings[keyStr]; exists {
		return binding
	}
	return kh.bindings[kh.currentMode][keyStr]
}

// HandleKey dispatches a key event to its binding and reports whether one
// matched. The binding table is not locked while the handler runs, so a
// handler may register or unregister bindings.
func (kh *KeyboardHandler) HandleKey(event KeyEvent) (bool, error) {
	binding := kh.lookup(event)
	if binding == nil || binding.Handler == nil {
		return false, nil
	}
	return true, binding.Handler(event)
}

// GetBindings returns all bindings for a specific mode
func (kh *KeyboardHandler) GetBindings(mode Mode) []*KeyBinding {
	if mode == ModeGlobal {
		return kh.GetGlobalBindings()
	}

	kh.mu.RLock()
	defer kh.mu.RUnlock()

	bindings := make([]*KeyBinding, 0, len(kh.bindings[mode]))
	for _, binding := range kh.bindings[mode] {
		bindings = append(bindings, binding)
	}

	return bindings
}

// GetGlobalBindings returns all global bindings
func (kh *KeyboardHandler) GetGlobalBindings() []*KeyBinding {
	kh.mu.RLock()
	defer kh.mu.RUnlock()

	bindings := make([]*KeyBinding, 0, len(kh.globalBindings))
	for _, binding := range kh.globalBindings {
		bindings = append(bindings, binding)
	}

	return bindings
}

// GetAllBindings returns all bindings keyed by mode, globals under ModeGlobal
func (kh *KeyboardHandler) GetAllBindings() map[Mode][]*KeyBinding {
	kh.mu.RLock()
	defer kh.mu.RUnlock()

	result := make(map[Mode][]*KeyBinding)

	for mode, modeBindings := range kh.bindings {
		bindings := make([]*KeyBinding, 0, len(modeBindings))
		for _, binding := range modeBindings {
			bindings = append(bindings, binding)
		}
		result[mode] = bindings
	}

	globalBindings := make([]*KeyBinding, 0, len(kh.globalBindings))
	for _, binding := range kh.globalBindings {
		globalBindings = append(globalBindings, binding)
	}
	result[ModeGlobal] = globalBindings

	return result
}

// keyEventToString converts a KeyEvent to a string for lookup
func keyEventToString(event KeyEvent) string {
	if event.IsSpecial {
		base := event.Special
		if event.Ctrl {
			base = "Ctrl-" + base
		}
		if event.Alt {
			base = "Alt-" + base
		}
		if event.Shift {
			base = "Shift-" + base
		}
		return base
	}

	key := string(event.Key)
	if event.Ctrl {
		key = fmt.Sprintf("Ctrl-%c", event.Key)
	}
	if event.Alt {
		key = fmt.Sprintf("Alt-%c", event.Key)
	}
	if event.Shift && event.Key >= 'a' && event.Key <= 'z' {
		// Shift+letter is represented as uppercase
		key = string(event.Key - 32)
	}

	return key
}
