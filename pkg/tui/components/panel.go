package components

import (
	"github.com/dshills/goterm"
)

// Panel is a bordered frame with a title around a NavList
type Panel struct {
	title   string
	x       int
	y       int
	width   int
	height  int
	content *NavList
	style   PanelStyle
}

// PanelStyle defines visual appearance of a panel
type PanelStyle struct {
	TitleFg   goterm.Color
	TitleBg   goterm.Color
	BorderFg  goterm.Color
	BorderBg  goterm.Color
	FocusedFg goterm.Color // border color while the list holds focus
}

// DefaultPanelStyle returns the default panel style
func DefaultPanelStyle() PanelStyle {
	return PanelStyle{
		TitleFg:   goterm.ColorRGB(255, 255, 255),
		TitleBg:   goterm.ColorRGB(40, 40, 80),
		BorderFg:  goterm.ColorRGB(128, 128, 128),
		BorderBg:  goterm.ColorDefault(),
		FocusedFg: goterm.ColorRGB(100, 200, 255),
	}
}

// NewPanel frames content, placing it inside the border
func NewPanel(title string, x, y, width, height int, content *NavList) *Panel {
	p := &Panel{
		title:   title,
		content: content,
		style:   DefaultPanelStyle(),
	}
	p.SetBounds(x, y, width, height)
	return p
}

// SetBounds moves and resizes the panel and its content
func (p *Panel) SetBounds(x, y, width, height int) {
	p.x, p.y, p.width, p.height = x, y, width, height
	if p.content != nil {
		p.content.SetPosition(x+1, y+1)
		p.content.SetSize(max(0, width-2), max(0, height-2))
	}
}

// Bounds returns the panel position and size
func (p *Panel) Bounds() (x, y, width, height int) {
	return p.x, p.y, p.width, p.height
}

// SetStyle sets the panel style
func (p *Panel) SetStyle(style PanelStyle) {
	p.style = style
}

// Render draws the border, the title and the framed list
func (p *Panel) Render(screen *goterm.Screen) {
	if screen == nil {
		return
	}

	border := p.style.BorderFg
	if p.content != nil {
		if _, ok := p.content.Focused(); ok {
			border = p.style.FocusedFg
		}
	}
	drawBox(screen, p.x, p.y, p.width, p.height, border, p.style.BorderBg)

	if p.title != "" && p.width > 4 {
		title := fit(" "+p.title+" ", min(len([]rune(p.title))+2, p.width-4))
		screen.DrawText(p.x+2, p.y, title, p.style.TitleFg, p.style.TitleBg, goterm.StyleBold)
	}

	if p.content != nil {
		p.content.Render(screen)
	}
}
