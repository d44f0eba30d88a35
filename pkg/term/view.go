package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carousel/pkg/registry"
)

type cellStyle uint8

const (
	styleNone cellStyle = iota
	styleItem
	styleSelected
	styleFaded
)

type cell struct {
	r     rune
	style cellStyle
}

type canvas struct {
	cells [][]cell
	width int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{cells: make([][]cell, height), width: width}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, style cellStyle) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= c.width {
		return
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// box draws a bordered box covering the half-open cell rectangle.
func (c *canvas) box(left, top, right, bottom int, label string, style cellStyle) {
	right--
	bottom--
	if right <= left || bottom <= top {
		return
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			r := ' '
			switch {
			case y == top && x == left:
				r = '┌'
			case y == top && x == right:
				r = '┐'
			case y == bottom && x == left:
				r = '└'
			case y == bottom && x == right:
				r = '┘'
			case y == top || y == bottom:
				r = '─'
			case x == left || x == right:
				r = '│'
			}
			c.set(x, y, r, style)
		}
	}
	inner := right - left - 1
	runes := []rune(label)
	if len(runes) > inner {
		runes = runes[:max(inner, 0)]
	}
	x := left + 1 + (inner-len(runes))/2
	y := top + (bottom-top)/2
	for i, r := range runes {
		c.set(x+i, y, r, style)
	}
}

func (c *canvas) render(p Palette) string {
	styles := map[cellStyle]lipgloss.Style{
		styleItem:     p.Item,
		styleSelected: p.Selected,
		styleFaded:    p.Faded,
	}
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if st, ok := styles[row[start].style]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = x
		}
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = m.surface.Columns(m.ctrl.ViewportWidth())
	}

	items := m.ctrl.Items()
	height := 3
	for _, item := range items {
		_, _, _, bottom := m.surface.CellBounds(item)
		height = max(height, bottom)
	}
	cv := newCanvas(width, height)
	selected := m.ctrl.SelectedItem()
	draw := func(item *registry.Item, style cellStyle) {
		opacity := m.surface.Opacity(item)
		if opacity <= 0 {
			return
		}
		if opacity < 0.5 {
			style = styleFaded
		}
		left, top, right, bottom := m.surface.CellBounds(item)
		cv.box(left, top, right, bottom, m.label(item), style)
	}
	for _, item := range items {
		if item != selected {
			draw(item, styleItem)
		}
	}
	if selected != nil {
		draw(selected, styleSelected)
	}

	var b strings.Builder
	b.WriteString(m.palette.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(cv.render(m.palette))
	b.WriteString("\n\n")
	b.WriteString(m.palette.Status.Render(m.statusLine()))
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(m.palette.Warning.Render(m.warning))
	}
	b.WriteString("\n")
	b.WriteString(m.palette.Help.Render("←/→ scroll · drag · enter tap · i insert · d remove · r replace · s strategy · a animations · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	n := m.ctrl.Len()
	if n == 0 {
		return "empty"
	}
	line := fmt.Sprintf("%d/%d  %v  %v", m.ctrl.CurrentPosition()+1, n, m.ctrl.Strategy().Kind(), m.ctrl.State())
	if m.status != "" {
		line += "  " + m.status
	}
	return line
}
