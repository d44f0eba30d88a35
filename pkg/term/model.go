package term

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/registry"
)

// FrameInterval is the delay between animation frames.
const FrameInterval = time.Second / 60

// Options configures a Model.
type Options struct {
	Title      string
	Controller *carousel.Controller
	Provider   *carousel.ListProvider
	Surface    *Surface
	// NewItem creates the n-th item added from the keyboard. Nil disables
	// the insert and replace keys.
	NewItem func(n int) *registry.Item
	// Label returns the text drawn inside item. Nil prints its content.
	Label func(item *registry.Item) string
	// Alternate is the strategy the "s" key switches to. Nil picks the
	// default of the other kind.
	Alternate layout.Strategy
	// Diagnostics, when set, should be the controller's error handler. The
	// latest warning or recovered panic it holds is shown under the carousel.
	Diagnostics *errors.Recorder
	Palette     *Palette
}

type frameMsg time.Time

// dragState is the cell where the mouse button went down.
type dragState struct {
	x, y   int
	button tea.MouseButton
}

// Model is a bubbletea model driving a carousel controller from the
// keyboard and mouse.
type Model struct {
	title     string
	ctrl      *carousel.Controller
	provider  *carousel.ListProvider
	surface   *Surface
	newItem   func(n int) *registry.Item
	label     func(item *registry.Item) string
	alternate layout.Strategy
	diag      *errors.Recorder
	palette   Palette

	created  int
	width    int
	height   int
	drag     *dragState
	status   string
	warning  string
	quitting bool
}

// New creates a model from opts. Controller and Surface are required and
// must be the controller's configured surface.
func New(opts Options) Model {
	m := Model{
		title:     opts.Title,
		ctrl:      opts.Controller,
		provider:  opts.Provider,
		surface:   opts.Surface,
		newItem:   opts.NewItem,
		label:     opts.Label,
		alternate: opts.Alternate,
		diag:      opts.Diagnostics,
		palette:   DefaultPalette(),
	}
	if opts.Palette != nil {
		m.palette = *opts.Palette
	}
	if m.label == nil {
		m.label = defaultLabel
	}
	if m.title == "" {
		m.title = "carousel"
	}
	return m
}

func defaultLabel(item *registry.Item) string {
	if item.Content == nil {
		return fmt.Sprintf("#%d", item.Position())
	}
	return fmt.Sprint(item.Content)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.collectDiagnostics()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.report(m.ctrl.SetViewportWidth(m.surface.Points(msg.Width)))
		return m, m.frame()
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		m = m.updateMouse(msg)
		return m, m.frame()
	case frameMsg:
		m.surface.Step()
		return m, m.frame()
	}
	return m, nil
}

// frame schedules the next animation frame while anything is moving.
func (m Model) frame() tea.Cmd {
	if !m.surface.Animating() {
		return nil
	}
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) report(err error) {
	if err != nil {
		m.warning = err.Error()
		return
	}
	m.warning = ""
}

// collectDiagnostics moves the latest recorded warning or panic into the
// warning line.
func (m *Model) collectDiagnostics() {
	if m.diag == nil {
		return
	}
	switch {
	case len(m.diag.Panics) > 0:
		m.warning = m.diag.Panics[len(m.diag.Panics)-1].Error()
	case len(m.diag.Warnings) > 0:
		m.warning = m.diag.Warnings[len(m.diag.Warnings)-1].String()
	default:
		return
	}
	m.diag.Reset()
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	pos := m.ctrl.CurrentPosition()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		m.report(m.ctrl.SetPosition(pos-1, true))
	case "right", "l":
		m.report(m.ctrl.SetPosition(pos+1, true))
	case "home", "g":
		m.report(m.ctrl.SetPosition(0, true))
	case "end", "G":
		m.report(m.ctrl.SetPosition(m.ctrl.Len()-1, true))
	case "enter", " ":
		m.report(m.ctrl.Tap(pos))
	case "a":
		m.ctrl.SetAnimationsEnabled(!m.ctrl.AnimationsEnabled())
		m.status = fmt.Sprintf("animations %v", onOff(m.ctrl.AnimationsEnabled()))
	case "s":
		m.toggleStrategy()
	case "i":
		m.insert()
	case "d", "x":
		m.remove()
	case "r":
		m.replace()
	}
	return m, m.frame()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) toggleStrategy() {
	next := m.alternate
	if next == nil || next.Kind() == m.ctrl.Strategy().Kind() {
		kind := layout.KindLeftBound
		if m.ctrl.Strategy().Kind() == layout.KindLeftBound {
			kind = layout.KindCentered
		}
		next, _ = layout.New(kind, layout.Params{})
	}
	m.alternate = m.ctrl.Strategy()
	m.report(m.ctrl.SetStrategy(next))
	m.status = fmt.Sprintf("strategy %v", next.Kind())
}

func (m *Model) insert() {
	if m.provider == nil || m.newItem == nil {
		return
	}
	index := 0
	if m.ctrl.Len() > 0 {
		index = m.ctrl.CurrentPosition() + 1
	}
	m.created++
	if err := m.provider.Insert(index, m.newItem(m.created)); err != nil {
		m.report(err)
		return
	}
	m.ctrl.NotifyItemInserted(index)
	m.status = fmt.Sprintf("inserted at %d", index)
}

func (m *Model) remove() {
	if m.provider == nil || m.ctrl.Len() == 0 {
		return
	}
	index := m.ctrl.CurrentPosition()
	if _, err := m.provider.Remove(index); err != nil {
		m.report(err)
		return
	}
	m.ctrl.NotifyItemRemoved(index)
	m.status = fmt.Sprintf("removed %d", index)
}

func (m *Model) replace() {
	if m.provider == nil || m.newItem == nil || m.ctrl.Len() == 0 {
		return
	}
	index := m.ctrl.CurrentPosition()
	m.created++
	if _, err := m.provider.Replace(index, m.newItem(m.created)); err != nil {
		m.report(err)
		return
	}
	m.ctrl.NotifyItemChanged(index)
	m.status = fmt.Sprintf("replaced %d", index)
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.report(m.ctrl.SetPosition(m.ctrl.CurrentPosition()-1, true))
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.report(m.ctrl.SetPosition(m.ctrl.CurrentPosition()+1, true))
		case tea.MouseButtonLeft, tea.MouseButtonRight:
			m.drag = &dragState{x: msg.X, y: msg.Y, button: msg.Button}
			m.ctrl.BeginDrag()
		}
	case tea.MouseActionMotion:
		if m.drag != nil {
			m.ctrl.UpdateDrag(m.translation(m.drag, msg))
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m
		}
		d := m.drag
		m.drag = nil
		if msg.X == d.x && msg.Y == d.y {
			m.ctrl.EndDrag(geometry.Offset{})
			m.click(msg.X, d.button)
			return m
		}
		outcome := m.ctrl.EndDrag(m.translation(d, msg))
		if outcome.Committed {
			m.status = fmt.Sprintf("scrolled %v", outcome.Direction)
		} else {
			m.status = "drag cancelled"
		}
	}
	return m
}

// translation is the distance in points from the drag start to msg.
func (m Model) translation(start *dragState, msg tea.MouseMsg) geometry.Offset {
	return geometry.Offset{
		X: float64(msg.X-start.x) * m.surface.ColumnWidth,
		Y: float64(msg.Y-start.y) * m.surface.RowHeight,
	}
}

// click taps (or long-presses, for the right button) the item drawn under
// column x.
func (m *Model) click(x int, button tea.MouseButton) {
	for _, item := range m.ctrl.Items() {
		left, _, right, _ := m.surface.CellBounds(item)
		if x < left || x >= right {
			continue
		}
		if button == tea.MouseButtonRight {
			m.report(m.ctrl.LongPress(item.Position()))
		} else {
			m.report(m.ctrl.Tap(item.Position()))
		}
		return
	}
}
