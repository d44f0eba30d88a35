package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/raster"
	"github.com/go-drift/carousel/pkg/registry"
)

// dragSteps is the number of updates a scripted drag is split into.
const dragSteps = 5

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Run the configured script and log every event",
		Long: `Run the script from the configuration against the carousel, printing
each step's outcome, the events the carousel raises and any warnings,
followed by the final placement.

Animations run on a simulated clock and are settled after every step.

Flags:
  --config FILE   Configuration file (default: ./carousel.yaml)
  --position N    Start at item N instead of the configured start
  --verbose       Include error details in warnings`,
		Usage: "carousel simulate [--config FILE] [--position N] [--verbose]",
		Run:   runSimulate,
	})
}

func runSimulate(args []string) error {
	opts, err := parseCommonArgs(args)
	if err != nil {
		return err
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	fmt.Fprintf(Output, "%s: %v layout, viewport %g, %d items\n", cfg.Title, cfg.Strategy.Kind(), cfg.Viewport, len(cfg.Items))
	sim, err := newSimulation(Output, cfg, opts.verbose)
	if err != nil {
		return err
	}
	sim.run(cfg.Script)
	printPlacement(Output, sim.ctrl)
	return nil
}

// logSink prints carousel events.
type logSink struct {
	w       io.Writer
	scrolls int
}

func (s *logSink) OnScroll() { s.scrolls++ }

func (s *logSink) OnSelect(item *registry.Item, position int) {
	fmt.Fprintf(s.w, "  select %v @%d\n", item.Content, position)
}

func (s *logSink) OnTap(item *registry.Item, position int) {
	fmt.Fprintf(s.w, "  tap %v @%d\n", item.Content, position)
}

func (s *logSink) OnLongPress(item *registry.Item, position int) {
	fmt.Fprintf(s.w, "  long press %v @%d\n", item.Content, position)
}

// simulation runs scripted steps against a controller drawn on a raster
// surface with a simulated clock.
type simulation struct {
	w        io.Writer
	cfg      *config.Resolved
	clock    *simClock
	surface  *raster.Surface
	sink     *logSink
	ctrl     *carousel.Controller
	provider *carousel.ListProvider
}

func newSimulation(w io.Writer, cfg *config.Resolved, verbose bool) (*simulation, error) {
	s := &simulation{w: w, cfg: cfg, clock: newSimClock(), sink: &logSink{w: w}}
	s.surface = raster.NewSurface(s.clock)
	ctrl, provider, err := newController(cfg, s.surface, s.sink, &errors.LogHandler{Verbose: verbose, Out: w})
	if err != nil {
		return nil, err
	}
	s.ctrl, s.provider = ctrl, provider
	return s, nil
}

func (s *simulation) run(steps []config.Step) {
	for i, step := range steps {
		fmt.Fprintf(s.w, "step %d: %s\n", i+1, describe(step))
		if err := s.step(step); err != nil {
			fmt.Fprintf(s.w, "  error: %v\n", err)
		}
		s.settle()
		fmt.Fprintf(s.w, "  position %d, centers %s\n", s.ctrl.CurrentPosition(), s.centers())
	}
}

func describe(step config.Step) string {
	switch step.Action {
	case config.ActionDrag:
		return fmt.Sprintf("drag dx=%g dy=%g", step.Dx, step.Dy)
	case config.ActionInsert, config.ActionChange:
		return fmt.Sprintf("%s %q at %d", step.Action, step.Item.Label, step.Index)
	case config.ActionResize:
		return fmt.Sprintf("resize to %g", step.Viewport)
	case config.ActionStrategy:
		return fmt.Sprintf("strategy %s", step.Strategy)
	case config.ActionReload:
		return "reload"
	default:
		return fmt.Sprintf("%s %d", step.Action, step.Index)
	}
}

func (s *simulation) step(step config.Step) error {
	switch step.Action {
	case config.ActionDrag:
		s.drag(geometry.Offset{X: step.Dx, Y: step.Dy})
	case config.ActionSetPosition:
		return s.ctrl.SetPosition(step.Index, step.IsAnimated())
	case config.ActionInsert:
		if err := s.provider.Insert(step.Index, newItem(*step.Item)); err != nil {
			return err
		}
		s.ctrl.NotifyItemInserted(step.Index)
	case config.ActionRemove:
		if _, err := s.provider.Remove(step.Index); err != nil {
			return err
		}
		s.ctrl.NotifyItemRemoved(step.Index)
	case config.ActionChange:
		if _, err := s.provider.Replace(step.Index, newItem(*step.Item)); err != nil {
			return err
		}
		s.ctrl.NotifyItemChanged(step.Index)
	case config.ActionTap:
		return s.ctrl.Tap(step.Index)
	case config.ActionLongPress:
		return s.ctrl.LongPress(step.Index)
	case config.ActionReload:
		return s.ctrl.Reload()
	case config.ActionResize:
		return s.ctrl.SetViewportWidth(step.Viewport)
	case config.ActionStrategy:
		kind, err := layout.ParseKind(step.Strategy)
		if err != nil {
			return err
		}
		strategy, err := layout.New(kind, layout.Params{})
		if err != nil {
			return err
		}
		return s.ctrl.SetStrategy(strategy)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

// drag replays a gesture as a sequence of evenly spaced updates.
func (s *simulation) drag(translation geometry.Offset) {
	s.sink.scrolls = 0
	s.ctrl.BeginDrag()
	for i := 1; i <= dragSteps; i++ {
		f := float64(i) / dragSteps
		s.ctrl.UpdateDrag(geometry.Offset{X: translation.X * f, Y: translation.Y * f})
	}
	outcome := s.ctrl.EndDrag(translation)
	verdict := "cancelled"
	if outcome.Committed {
		verdict = "committed"
	}
	fmt.Fprintf(s.w, "  %s %v after %d scroll updates\n", verdict, outcome.Direction, s.sink.scrolls)
}

// settle runs every pending animation to completion.
func (s *simulation) settle() {
	s.clock.advance(s.cfg.AnimationDuration)
	s.surface.Step()
}

func (s *simulation) centers() string {
	parts := make([]string, 0, s.ctrl.Len())
	for _, item := range s.ctrl.Items() {
		parts = append(parts, fmt.Sprintf("%g", s.surface.CaptureCurrentCoordinate(item).X))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
