package components

import (
	"strings"

	"github.com/dshills/goterm"
	"github.com/dshills/keynav/pkg/navigation"
)

// ListStyle defines visual appearance of a list
type ListStyle struct {
	ItemFg     goterm.Color
	ItemBg     goterm.Color
	FocusedFg  goterm.Color
	FocusedBg  goterm.Color
	HeaderFg   goterm.Color
	HeaderBg   goterm.Color
	EmptyFg    goterm.Color
	IndentWith string
}

// DefaultListStyle returns the default list style
func DefaultListStyle() ListStyle {
	return ListStyle{
		ItemFg:     goterm.ColorRGB(220, 220, 220),
		ItemBg:     goterm.ColorDefault(),
		FocusedFg:  goterm.ColorRGB(0, 0, 0),
		FocusedBg:  goterm.ColorRGB(100, 200, 255),
		HeaderFg:   goterm.ColorRGB(255, 255, 0),
		HeaderBg:   goterm.ColorDefault(),
		EmptyFg:    goterm.ColorRGB(100, 100, 100),
		IndentWith: "  ",
	}
}

// Line is one rendered row of a NavList tree
type Line struct {
	Text    string
	Depth   int
	Header  bool // section title
	Focused bool
}

// navRow is either a leaf row or a nested section
type navRow struct {
	label   string
	item    *navigation.Item
	section *NavList
}

// focusState is shared by every list in one tree
type focusState struct {
	list *NavList
	row  *navRow
}

// NavList is a keyboard-navigable list. Every row mounts itself into the
// list's navigation Registry; focusing a row is the row's callback, so focus
// only ever moves through the navigation engine.
type NavList struct {
	x         int
	y         int
	width     int
	height    int
	title     string
	registry  *navigation.Registry
	group     *navigation.Group // nil for the root list
	parent    *NavList
	rows      []*navRow
	focus     *focusState
	scrollTop int
	style     ListStyle
}

// NewNavList creates a root list whose Registry is built with opts
func NewNavList(x, y, width, height int, opts ...navigation.Option) *NavList {
	return &NavList{
		x:        x,
		y:        y,
		width:    width,
		height:   height,
		registry: navigation.New(opts...),
		focus:    &focusState{},
		style:    DefaultListStyle(),
	}
}

// Registry returns the navigation Registry rows register into
func (l *NavList) Registry() *navigation.Registry {
	return l.registry
}

// Title returns the section title, empty for the root list
func (l *NavList) Title() string {
	return l.title
}

// SetStyle sets the list style
func (l *NavList) SetStyle(style ListStyle) {
	l.style = style
}

// SetPosition sets the list position
func (l *NavList) SetPosition(x, y int) {
	l.x = x
	l.y = y
}

// SetSize sets the list dimensions
func (l *NavList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.root().ensureVisible()
}

// Len returns the number of rows, counting a section as one row
func (l *NavList) Len() int {
	return len(l.rows)
}

// Append adds a leaf row and mounts it
func (l *NavList) Append(label string) {
	row := &navRow{label: label, item: navigation.NewItem(l.registry)}
	l.rows = append(l.rows, row)
	row.item.Mount(func() { l.focusRow(row) })
}

// AddSection adds a nested, navigable section and returns it
func (l *NavList) AddSection(title string, opts ...navigation.Option) *NavList {
	group := navigation.NewGroup(l.registry, opts...)
	section := &NavList{
		title:    title,
		registry: group.Registry(),
		group:    group,
		parent:   l,
		focus:    l.focus,
		style:    l.style,
	}
	l.rows = append(l.rows, &navRow{label: title, section: section})
	group.Mount()
	return section
}

// Next moves focus forward through the tree
func (l *NavList) Next() {
	l.registry.Next()
}

// Previous moves focus backward through the tree
func (l *NavList) Previous() {
	l.registry.Previous()
}

// Has reports whether a move in direction d would focus a row
func (l *NavList) Has(d navigation.Direction) bool {
	return l.registry.Has(d)
}

// Reset clears focus without invoking any row
func (l *NavList) Reset() {
	l.registry.Reset()
	l.ClearFocus()
}

// Section returns the first section with the given title
func (l *NavList) Section(title string) (*NavList, bool) {
	for _, row := range l.rows {
		if row.section != nil && row.label == title {
			return row.section, true
		}
	}
	return nil, false
}

// Remove unmounts the first row or section with the given label
func (l *NavList) Remove(label string) bool {
	for _, row := range l.rows {
		if row.label == label {
			l.removeRow(row)
			return true
		}
	}
	return false
}

// RemoveFocused unmounts the focused row, wherever it is in the tree
func (l *NavList) RemoveFocused() bool {
	if l.focus.row == nil {
		return false
	}
	l.focus.list.removeRow(l.focus.row)
	return true
}

// Focused returns the label of the focused row
func (l *NavList) Focused() (string, bool) {
	if l.focus.row == nil {
		return "", false
	}
	return l.focus.row.label, true
}

// ClearFocus drops the highlight after the tree was reset from outside
func (l *NavList) ClearFocus() {
	l.focus.list = nil
	l.focus.row = nil
}

func (l *NavList) removeRow(row *navRow) {
	for i, r := range l.rows {
		if r == row {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			break
		}
	}

	// Unmounting may move focus through a row callback.
	switch {
	case row.item != nil:
		row.item.Unmount()
		if l.focus.row == row {
			l.ClearFocus()
		}
	case row.section != nil:
		row.section.group.Unmount()
		if l.focus.list != nil && l.focus.list.within(row.section) {
			l.ClearFocus()
		}
	}
	l.root().ensureVisible()
}

// within reports whether l is section or nested inside it
func (l *NavList) within(section *NavList) bool {
	for cur := l; cur != nil; cur = cur.parent {
		if cur == section {
			return true
		}
	}
	return false
}

func (l *NavList) focusRow(row *navRow) {
	l.focus.list = l
	l.focus.row = row
	l.root().ensureVisible()
}

func (l *NavList) root() *NavList {
	cur := l
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Lines flattens the tree into display order
func (l *NavList) Lines() []Line {
	var lines []Line
	l.appendLines(&lines, 0)
	return lines
}

func (l *NavList) appendLines(lines *[]Line, depth int) {
	for _, row := range l.rows {
		if row.section != nil {
			*lines = append(*lines, Line{Text: row.label, Depth: depth, Header: true})
			row.section.appendLines(lines, depth+1)
			continue
		}
		*lines = append(*lines, Line{
			Text:    row.label,
			Depth:   depth,
			Focused: l.focus.row == row,
		})
	}
}

// ensureVisible adjusts scrollTop so the focused line is on screen
func (l *NavList) ensureVisible() {
	if l.height <= 0 {
		return
	}
	lines := l.Lines()
	if l.scrollTop > len(lines)-l.height {
		l.scrollTop = max(0, len(lines)-l.height)
	}

	for pos, line := range lines {
		if !line.Focused {
			continue
		}
		if pos < l.scrollTop {
			l.scrollTop = pos
		} else if pos >= l.scrollTop+l.height {
			l.scrollTop = pos - l.height + 1
		}
		return
	}
}

// ScrollTop returns the index of the first visible line
func (l *NavList) ScrollTop() int {
	return l.scrollTop
}

// Render draws the visible lines of the tree to the screen
func (l *NavList) Render(screen *goterm.Screen) {
	if screen == nil {
		return
	}
	root := l.root()
	lines := root.Lines()

	if len(lines) == 0 {
		screen.DrawText(root.x, root.y, fit("  (empty)", root.width), root.style.EmptyFg, root.style.ItemBg, goterm.StyleDim)
		return
	}

	for i := 0; i < root.height; i++ {
		pos := root.scrollTop + i
		if pos >= len(lines) {
			break
		}
		root.drawLine(screen, root.y+i, lines[pos])
	}
}

func (l *NavList) drawLine(screen *goterm.Screen, y int, line Line) {
	indent := strings.Repeat(l.style.IndentWith, line.Depth)

	fg, bg, style := l.style.ItemFg, l.style.ItemBg, goterm.StyleNone
	prefix := "  "
	switch {
	case line.Header:
		fg, bg, style = l.style.HeaderFg, l.style.HeaderBg, goterm.StyleBold
		prefix = "▾ "
	case line.Focused:
		fg, bg, style = l.style.FocusedFg, l.style.FocusedBg, goterm.StyleReverse
		prefix = "► "
	}

	screen.DrawText(l.x, y, fit(indent+prefix+line.Text, l.width), fg, bg, style)
}

// fit truncates or pads s to exactly width runes
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
