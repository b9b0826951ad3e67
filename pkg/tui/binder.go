package tui

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/keynav/pkg/errors"
	"github.com/dshills/keynav/pkg/navigation"
	"github.com/google/uuid"
)

// Binder attaches a Keymap to navigation roots for the lifetime of a scope.
//
// Scopes stack: the most recently bound scope that is still open is the only
// live one, so a key press moves focus in exactly one root. The Binder
// installs its three bindings on the KeyboardHandler when the first scope
// opens and removes them when the last one closes.
type Binder struct {
	keyboard *KeyboardHandler
	keymap   Keymap
	mode     Mode
	logger   *slog.Logger

	mu        sync.Mutex
	scopes    []*Scope
	installed bool
}

// BinderOption configures a Binder
type BinderOption func(*Binder)

// WithBindingMode selects the keyboard mode the triggers are bound in.
// ModeGlobal binds them in every mode. The default is ModeNormal.
func WithBindingMode(mode Mode) BinderOption {
	return func(b *Binder) {
		b.mode = mode
	}
}

// WithBinderLogger sets the logger for scope lifecycle events
func WithBinderLogger(logger *slog.Logger) BinderOption {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBinder creates a Binder for kh. The keymap is validated on first Bind.
func NewBinder(kh *KeyboardHandler, keymap Keymap, opts ...BinderOption) *Binder {
	b := &Binder{
		keyboard: kh,
		keymap:   keymap,
		mode:     ModeNormal,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Keymap returns the Binder's keymap
func (b *Binder) Keymap() Keymap {
	return b.keymap
}

// Scope is one mounted navigation region bound to the keyboard
type Scope struct {
	id     string
	name   string
	root   navigation.Navigator
	binder *Binder
}

// ID returns the scope's unique identifier
func (s *Scope) ID() string {
	return s.id
}

// Name returns the name the scope was bound with
func (s *Scope) Name() string {
	return s.name
}

// Root returns the navigator the scope drives
func (s *Scope) Root() navigation.Navigator {
	return s.root
}

// Close unbinds the scope. Closing twice is a no-op.
func (s *Scope) Close() error {
	return s.binder.release(s)
}

// Bind opens a scope driving root and makes it the live scope
func (b *Binder) Bind(name string, root navigation.Navigator) (*Scope, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot bind scope %q to nil navigator", name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.installed {
		if err := b.install(); err != nil {
			return nil, err
		}
		b.installed = true
	}

	s := &Scope{
		id:     uuid.NewString(),
		name:   name,
		root:   root,
		binder: b,
	}
	b.scopes = append(b.scopes, s)

	b.logger.Debug("navigation scope bound", "scope", s.id, "name", name, "depth", len(b.scopes))
	return s, nil
}

// Active returns the live scope, or nil when none is bound
func (b *Binder) Active() *Scope {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1]
}

// Depth returns the number of open scopes
func (b *Binder) Depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.scopes)
}

func (b *Binder) release(s *Scope) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i, open := range b.scopes {
		if open == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	b.scopes = append(b.scopes[:idx], b.scopes[idx+1:]...)
	b.logger.Debug("navigation scope closed", "scope", s.id, "name", s.name, "depth", len(b.scopes))

	if len(b.scopes) == 0 && b.installed {
		b.uninstall()
		b.installed = false
	}
	return nil
}

// install registers the three triggers. Caller holds b.mu.
func (b *Binder) install() error {
	if err := b.keymap.Validate(); err != nil {
		return errors.NewOperationalError("validating keymap", "", "", err)
	}

	triggers := []struct {
		op    string
		key   KeyEvent
		label string
		fire  func(navigation.Navigator)
	}{
		{"binding forward key", b.keymap.Forward, "Focus next item", navigation.Navigator.Next},
		{"binding backward key", b.keymap.Backward, "Focus previous item", navigation.Navigator.Previous},
		{"binding reset key", b.keymap.Reset, "Clear focus", navigation.Navigator.Reset},
	}

	for i, trig := range triggers {
		fire := trig.fire
		handler := func(KeyEvent) error {
			if s := b.Active(); s != nil {
				fire(s.root)
			}
			return nil
		}

		if err := b.keyboard.RegisterBinding(b.mode, trig.key, handler, trig.label); err != nil {
			for _, done := range triggers[:i] {
				b.keyboard.UnregisterBinding(b.mode, done.key)
			}
			return errors.NewOperationalErrorWithAttrs(trig.op, "", trig.key.String(), err,
				map[string]interface{}{"mode": string(b.mode)})
		}
	}

	b.logger.Debug("navigation keys installed",
		"mode", string(b.mode),
		"forward", b.keymap.Forward.String(),
		"backward", b.keymap.Backward.String(),
		"reset", b.keymap.Reset.String())
	return nil
}

// uninstall removes the three triggers. Caller holds b.mu.
func (b *Binder) uninstall() {
	for _, key := range []KeyEvent{b.keymap.Forward, b.keymap.Backward, b.keymap.Reset} {
		b.keyboard.UnregisterBinding(b.mode, key)
	}
}
