package components

import (
	"github.com/dshills/goterm"
	"github.com/dshills/keynav/pkg/navigation"
)

// Button is a focusable button. It receives focus only through the
// navigation Registry it is mounted on.
type Button struct {
	label    string
	x        int
	y        int
	enabled  bool
	focused  bool
	item     *navigation.Item
	onFocus  func(*Button)
	onActive func()
	style    ButtonStyle
}

// ButtonStyle defines visual appearance of a button
type ButtonStyle struct {
	NormalFg   goterm.Color
	NormalBg   goterm.Color
	FocusedFg  goterm.Color
	FocusedBg  goterm.Color
	DisabledFg goterm.Color
	DisabledBg goterm.Color
}

// DefaultButtonStyle returns the default button style
func DefaultButtonStyle() ButtonStyle {
	return ButtonStyle{
		NormalFg:   goterm.ColorRGB(255, 255, 255),
		NormalBg:   goterm.ColorRGB(60, 60, 60),
		FocusedFg:  goterm.ColorRGB(0, 0, 0),
		FocusedBg:  goterm.ColorRGB(100, 200, 255),
		DisabledFg: goterm.ColorRGB(128, 128, 128),
		DisabledBg: goterm.ColorRGB(40, 40, 40),
	}
}

// NewButton creates a button bound to registry. onActivate runs on Activate.
func NewButton(label string, registry *navigation.Registry, onActivate func()) *Button {
	return &Button{
		label:    label,
		enabled:  true,
		item:     navigation.NewItem(registry),
		onActive: onActivate,
		style:    DefaultButtonStyle(),
	}
}

// OnFocus sets a hook run each time navigation lands on the button
func (b *Button) OnFocus(fn func(*Button)) {
	b.onFocus = fn
}

// SetEnabled mounts the button when enabled and unmounts it when disabled,
// so a disabled button is skipped by navigation
func (b *Button) SetEnabled(enabled bool) {
	b.enabled = enabled
	if enabled {
		b.Mount()
		return
	}
	b.Unmount()
}

// IsEnabled returns whether the button is enabled
func (b *Button) IsEnabled() bool {
	return b.enabled
}

// Mount registers the button with its Registry
func (b *Button) Mount() {
	if !b.enabled {
		return
	}
	b.item.Mount(b.focus)
}

// Unmount deregisters the button and drops its focus
func (b *Button) Unmount() {
	b.focused = false
	b.item.Unmount()
}

func (b *Button) focus() {
	b.focused = true
	if b.onFocus != nil {
		b.onFocus(b)
	}
}

// Blur clears the focused flag
func (b *Button) Blur() {
	b.focused = false
}

// IsFocused returns whether the button is focused
func (b *Button) IsFocused() bool {
	return b.focused
}

// Label returns the button label
func (b *Button) Label() string {
	return b.label
}

// SetPosition sets the button position
func (b *Button) SetPosition(x, y int) {
	b.x = x
	b.y = y
}

// SetStyle sets the button style
func (b *Button) SetStyle(style ButtonStyle) {
	b.style = style
}

// Width returns the rendered button width
func (b *Button) Width() int {
	return len([]rune(b.label)) + 4
}

// Activate triggers the button's callback if enabled
func (b *Button) Activate() {
	if b.enabled && b.onActive != nil {
		b.onActive()
	}
}

// Render renders the button to the screen
func (b *Button) Render(screen *goterm.Screen) {
	if screen == nil {
		return
	}

	var fg, bg goterm.Color
	switch {
	case !b.enabled:
		fg, bg = b.style.DisabledFg, b.style.DisabledBg
	case b.focused:
		fg, bg = b.style.FocusedFg, b.style.FocusedBg
	default:
		fg, bg = b.style.NormalFg, b.style.NormalBg
	}

	screen.DrawText(b.x, b.y, "[ "+b.label+" ]", fg, bg, goterm.StyleNone)
}
