package components

import (
	"strings"

	"github.com/dshills/goterm"
	"github.com/dshills/keynav/pkg/navigation"
)

// Dialog is a confirm dialog whose buttons live in their own Registry.
// Binding the Dialog as a navigation root while it is open keeps Tab inside it.
type Dialog struct {
	title    string
	message  string
	width    int
	height   int
	visible  bool
	registry *navigation.Registry
	buttons  []*Button
	focused  *Button
	onClose  func(confirmed bool)
	style    DialogStyle
}

// DialogStyle defines visual appearance of a dialog
type DialogStyle struct {
	TitleFg    goterm.Color
	TitleBg    goterm.Color
	BorderFg   goterm.Color
	BorderBg   goterm.Color
	MessageFg  goterm.Color
	MessageBg  goterm.Color
	BackdropFg goterm.Color
	BackdropBg goterm.Color
}

// DefaultDialogStyle returns the default dialog style
func DefaultDialogStyle() DialogStyle {
	return DialogStyle{
		TitleFg:    goterm.ColorRGB(255, 255, 255),
		TitleBg:    goterm.ColorRGB(40, 80, 120),
		BorderFg:   goterm.ColorRGB(150, 150, 200),
		BorderBg:   goterm.ColorDefault(),
		MessageFg:  goterm.ColorRGB(220, 220, 220),
		MessageBg:  goterm.ColorDefault(),
		BackdropFg: goterm.ColorRGB(0, 0, 0),
		BackdropBg: goterm.ColorRGB(0, 0, 0),
	}
}

// NewConfirmDialog creates a hidden OK/Cancel dialog. onClose receives
// true when OK was activated.
func NewConfirmDialog(title, message string, onClose func(confirmed bool), opts ...navigation.Option) *Dialog {
	d := &Dialog{
		title:    title,
		message:  message,
		width:    50,
		height:   9,
		registry: navigation.New(opts...),
		onClose:  onClose,
		style:    DefaultDialogStyle(),
	}

	d.buttons = []*Button{
		NewButton("OK", d.registry, func() { d.Close(true) }),
		NewButton("Cancel", d.registry, func() { d.Close(false) }),
	}
	for _, b := range d.buttons {
		b.OnFocus(d.focusButton)
		b.Mount()
	}

	return d
}

// Open shows the dialog and focuses its first button
func (d *Dialog) Open() {
	d.visible = true
	d.Reset()
	d.registry.Next()
}

// Close hides the dialog and reports the result
func (d *Dialog) Close(confirmed bool) {
	if !d.visible {
		return
	}
	d.visible = false
	d.Reset()
	if d.onClose != nil {
		d.onClose(confirmed)
	}
}

// IsVisible returns whether the dialog is open
func (d *Dialog) IsVisible() bool {
	return d.visible
}

// Registry returns the Registry the buttons are mounted on
func (d *Dialog) Registry() *navigation.Registry {
	return d.registry
}

// Next moves focus to the next button
func (d *Dialog) Next() {
	d.registry.Next()
}

// Previous moves focus to the previous button
func (d *Dialog) Previous() {
	d.registry.Previous()
}

// Has reports whether focus can move in direction dir
func (d *Dialog) Has(dir navigation.Direction) bool {
	return d.registry.Has(dir)
}

// Reset clears button focus
func (d *Dialog) Reset() {
	d.registry.Reset()
	if d.focused != nil {
		d.focused.Blur()
		d.focused = nil
	}
}

// Activate presses the focused button
func (d *Dialog) Activate() bool {
	if !d.visible || d.focused == nil {
		return false
	}
	d.focused.Activate()
	return true
}

// Focused returns the label of the focused button
func (d *Dialog) Focused() (string, bool) {
	if d.focused == nil {
		return "", false
	}
	return d.focused.Label(), true
}

func (d *Dialog) focusButton(b *Button) {
	if d.focused != nil && d.focused != b {
		d.focused.Blur()
	}
	d.focused = b
}

// SetMessage sets the dialog message
func (d *Dialog) SetMessage(message string) {
	d.message = message
}

// SetStyle sets the dialog style
func (d *Dialog) SetStyle(style DialogStyle) {
	d.style = style
}

// Render renders the dialog centered on the screen
func (d *Dialog) Render(screen *goterm.Screen) {
	if !d.visible || screen == nil {
		return
	}

	width, height := screen.Size()
	x := (width - d.width) / 2
	y := (height - d.height) / 2

	d.drawBackdrop(screen)
	drawBox(screen, x, y, d.width, d.height, d.style.BorderFg, d.style.BorderBg)

	if d.title != "" {
		screen.DrawText(x+2, y, fit(" "+d.title+" ", min(len([]rune(d.title))+2, d.width-4)),
			d.style.TitleFg, d.style.TitleBg, goterm.StyleBold)
	}

	for i, line := range wrapText(d.message, d.width-4) {
		if i >= d.height-5 {
			break
		}
		screen.DrawText(x+2, y+2+i, line, d.style.MessageFg, d.style.MessageBg, goterm.StyleNone)
	}

	d.drawButtons(screen, x, y)
}

// drawBackdrop dims everything under the dialog
func (d *Dialog) drawBackdrop(screen *goterm.Screen) {
	width, height := screen.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := screen.GetCell(x, y)
			screen.SetCell(x, y, goterm.NewCell(cell.Ch, d.style.BackdropFg, d.style.BackdropBg, goterm.StyleDim))
		}
	}
}

func (d *Dialog) drawButtons(screen *goterm.Screen, x, y int) {
	total := 0
	for _, b := range d.buttons {
		total += b.Width()
	}
	total += 4 * (len(d.buttons) - 1)

	bx := x + (d.width-total)/2
	by := y + d.height - 3
	for _, b := range d.buttons {
		b.SetPosition(bx, by)
		b.Render(screen)
		bx += b.Width() + 4
	}
}

// drawBox draws a bordered, filled rectangle
func drawBox(screen *goterm.Screen, x, y, width, height int, fg, bg goterm.Color) {
	if width < 2 || height < 2 {
		return
	}

	screen.SetCell(x, y, goterm.NewCell('┌', fg, bg, goterm.StyleNone))
	screen.SetCell(x+width-1, y, goterm.NewCell('┐', fg, bg, goterm.StyleNone))
	screen.SetCell(x, y+height-1, goterm.NewCell('└', fg, bg, goterm.StyleNone))
	screen.SetCell(x+width-1, y+height-1, goterm.NewCell('┘', fg, bg, goterm.StyleNone))

	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, goterm.NewCell('─', fg, bg, goterm.StyleNone))
		screen.SetCell(x+i, y+height-1, goterm.NewCell('─', fg, bg, goterm.StyleNone))
	}

	for i := 1; i < height-1; i++ {
		screen.SetCell(x, y+i, goterm.NewCell('│', fg, bg, goterm.StyleNone))
		screen.SetCell(x+width-1, y+i, goterm.NewCell('│', fg, bg, goterm.StyleNone))
		for j := 1; j < width-1; j++ {
			screen.SetCell(x+j, y+i, goterm.NewCell(' ', fg, bg, goterm.StyleNone))
		}
	}
}

// wrapText wraps text to fit within a given width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var currentLine string

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
