package tui

import (
	"errors"
	"fmt"
)

// Keymap names the three triggers a navigation scope responds to
type Keymap struct {
	Forward  KeyEvent // moves focus to the next item
	Backward KeyEvent // moves focus to the previous item
	Reset    KeyEvent // clears focus without invoking anything
}

// DefaultKeymap returns Tab / Shift-Tab / Escape
func DefaultKeymap() Keymap {
	return Keymap{
		Forward:  NewSpecialKeyEvent("Tab").Build(),
		Backward: NewSpecialKeyEvent("Tab").WithShift().Build(),
		Reset:    NewSpecialKeyEvent("Escape").Build(),
	}
}

// ParseKeymap builds a Keymap from key names such as "Tab" or "Ctrl-n"
func ParseKeymap(forward, backward, reset string) (Keymap, error) {
	var km Keymap
	var err error

	if km.Forward, err = KeyEventFromString(forward); err != nil {
		return Keymap{}, fmt.Errorf("forward key: %w", err)
	}
	if km.Backward, err = KeyEventFromString(backward); err != nil {
		return Keymap{}, fmt.Errorf("backward key: %w", err)
	}
	if km.Reset, err = KeyEventFromString(reset); err != nil {
		return Keymap{}, fmt.Errorf("reset key: %w", err)
	}

	return km, km.Validate()
}

// Validate checks that all three keys are set and distinct
func (km Keymap) Validate() error {
	var errs []error

	for _, k := range []struct {
		name string
		key  KeyEvent
	}{
		{"forward", km.Forward},
		{"backward", km.Backward},
		{"reset", km.Reset},
	} {
		if k.key.IsZero() {
			errs = append(errs, fmt.Errorf("%s key is not set", k.name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if keyEventEquals(km.Forward, km.Backward) {
		errs = append(errs, fmt.Errorf("forward and backward both use %s", km.Forward))
	}
	if keyEventEquals(km.Forward, km.Reset) {
		errs = append(errs, fmt.Errorf("forward and reset both use %s", km.Forward))
	}
	if keyEventEquals(km.Backward, km.Reset) {
		errs = append(errs, fmt.Errorf("backward and reset both use %s", km.Backward))
	}

	return errors.Join(errs...)
}
