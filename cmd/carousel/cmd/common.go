package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
	"github.com/go-drift/carousel/pkg/registry"
)

type commonOptions struct {
	configPath string
	position   int
	hasPos     bool
	out        string
	height     int
	script     bool
	verbose    bool
}

// parseCommonArgs extracts the flags shared by every command. Flags with a
// value accept both "--flag value" and "--flag=value".
func parseCommonArgs(args []string) (commonOptions, error) {
	var opts commonOptions
	for i := 0; i < len(args); i++ {
		name, value, inline := strings.Cut(args[i], "=")
		next := func() (string, error) {
			if inline {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}
		switch name {
		case "--config":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.configPath = v
		case "--position":
			v, err := next()
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, fmt.Errorf("--position: %w", err)
			}
			opts.position, opts.hasPos = n, true
		case "--out":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.out = v
		case "--height":
			v, err := next()
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--height must be a positive integer, got %q", v)
			}
			opts.height = n
		case "--script":
			opts.script = true
		case "--verbose":
			opts.verbose = true
		default:
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return opts, nil
}

// resolve loads the configuration and applies --position.
func (o commonOptions) resolve() (*config.Resolved, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.hasPos {
		if o.position < 0 || o.position >= max(len(cfg.Items), 1) {
			return nil, fmt.Errorf("--position %d out of range for %d items", o.position, len(cfg.Items))
		}
		cfg.Start = o.position
	}
	return cfg, nil
}

func newItem(it config.Item) *registry.Item {
	return registry.NewItem(it.Label, geometry.Size{Width: it.Width, Height: it.Height})
}

// newController builds a controller over the configured items and
// initializes it at the configured start.
func newController(cfg *config.Resolved, surface carousel.RenderSurface, sink carousel.EventSink, h errors.ErrorHandler) (*carousel.Controller, *carousel.ListProvider, error) {
	items := make([]*registry.Item, len(cfg.Items))
	for i, it := range cfg.Items {
		items[i] = newItem(it)
	}
	provider := carousel.NewListProvider(items...)
	ctrl := carousel.New(carousel.Config{
		ViewportWidth:     cfg.Viewport,
		Strategy:          cfg.Strategy,
		DragThreshold:     cfg.DragThreshold,
		DisableAnimations: !cfg.Animations,
		AnimationDuration: cfg.AnimationDuration,
		Surface:           surface,
		Sink:              sink,
		ErrorHandler:      h,
	})
	ctrl.SetDataProvider(provider)
	if err := ctrl.Initialize(cfg.Start); err != nil {
		return nil, nil, err
	}
	return ctrl, provider, nil
}

// simClock is a clock that only moves when told to.
type simClock struct {
	now time.Time
}

func newSimClock() *simClock {
	return &simClock{now: time.Unix(0, 0)}
}

func (c *simClock) Now() time.Time { return c.now }

func (c *simClock) advance(d time.Duration) { c.now = c.now.Add(d) }
