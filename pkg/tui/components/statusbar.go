package components

import (
	"strings"

	"github.com/dshills/goterm"
)

// StatusBar is a one-line bar: a mode badge, key hints on the left and the
// focused item on the right. A flashed message replaces the hints for a
// number of key presses.
type StatusBar struct {
	y          int
	width      int
	mode       string
	hints      string
	focus      string
	message    string
	messageTTL int // key presses remaining for the flashed message
	style      StatusBarStyle
}

// StatusBarStyle defines visual appearance of a status bar
type StatusBarStyle struct {
	Fg        goterm.Color
	Bg        goterm.Color
	ModeFg    goterm.Color
	ModeBg    goterm.Color
	MessageFg goterm.Color
	MessageBg goterm.Color
}

// DefaultStatusBarStyle returns the default status bar style
func DefaultStatusBarStyle() StatusBarStyle {
	return StatusBarStyle{
		Fg:        goterm.ColorRGB(220, 220, 220),
		Bg:        goterm.ColorRGB(40, 40, 40),
		ModeFg:    goterm.ColorRGB(0, 0, 0),
		ModeBg:    goterm.ColorRGB(100, 200, 255),
		MessageFg: goterm.ColorRGB(255, 255, 0),
		MessageBg: goterm.ColorRGB(40, 40, 40),
	}
}

// NewStatusBar creates a status bar; y is typically screen height - 1
func NewStatusBar(y, width int) *StatusBar {
	return &StatusBar{
		y:     y,
		width: width,
		style: DefaultStatusBarStyle(),
	}
}

// SetPosition sets the status bar Y position and width
func (s *StatusBar) SetPosition(y, width int) {
	s.y = y
	s.width = width
}

// SetMode sets the mode badge (e.g. "NORMAL", "GLOBAL")
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetHints sets the key hint text
func (s *StatusBar) SetHints(hints string) {
	s.hints = hints
}

// SetFocus sets the focused item label; empty shows "none"
func (s *StatusBar) SetFocus(label string) {
	s.focus = label
}

// Flash shows message for the next presses key presses
func (s *StatusBar) Flash(message string, presses int) {
	s.message = message
	s.messageTTL = presses
}

// Message returns the flashed message, empty once it expired
func (s *StatusBar) Message() string {
	if s.messageTTL <= 0 {
		return ""
	}
	return s.message
}

// Tick counts one key press against the flashed message
func (s *StatusBar) Tick() {
	if s.messageTTL > 0 {
		s.messageTTL--
		if s.messageTTL == 0 {
			s.message = ""
		}
	}
}

// SetStyle sets the status bar style
func (s *StatusBar) SetStyle(style StatusBarStyle) {
	s.style = style
}

// Text returns the unstyled bar contents, as rendered
func (s *StatusBar) Text() string {
	var sb strings.Builder
	if s.mode != "" {
		sb.WriteString(" " + strings.ToUpper(s.mode) + " ")
		sb.WriteString(" ")
	}
	if msg := s.Message(); msg != "" {
		sb.WriteString(msg)
	} else {
		sb.WriteString(s.hints)
	}
	return sb.String() + "  " + s.focusText()
}

func (s *StatusBar) focusText() string {
	if s.focus == "" {
		return "focus: none"
	}
	return "focus: " + s.focus
}

// Render renders the status bar to the screen
func (s *StatusBar) Render(screen *goterm.Screen) {
	if screen == nil {
		return
	}

	// Follow the screen width on resize
	if width, _ := screen.Size(); width != s.width {
		s.width = width
	}

	screen.DrawText(0, s.y, fit("", s.width), s.style.Fg, s.style.Bg, goterm.StyleNone)

	x := 0
	if s.mode != "" {
		badge := " " + strings.ToUpper(s.mode) + " "
		screen.DrawText(x, s.y, badge, s.style.ModeFg, s.style.ModeBg, goterm.StyleBold)
		x += len([]rune(badge)) + 1
	}

	if msg := s.Message(); msg != "" {
		screen.DrawText(x, s.y, fit(msg, max(0, s.width-x)), s.style.MessageFg, s.style.MessageBg, goterm.StyleNone)
	} else if s.hints != "" {
		screen.DrawText(x, s.y, fit(s.hints, max(0, s.width-x)), s.style.Fg, s.style.Bg, goterm.StyleNone)
	}

	right := s.focusText()
	if rightX := s.width - len([]rune(right)); rightX > x {
		screen.DrawText(rightX, s.y, right, s.style.Fg, s.style.Bg, goterm.StyleNone)
	}
}
