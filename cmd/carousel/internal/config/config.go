// Package config loads carousel.yaml, the description of a carousel and an
// optional script of gestures and data changes to run against it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/raster"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "carousel.yaml"

// Defaults applied by Resolve.
const (
	DefaultViewport          = 400
	DefaultItemHeight        = 100
	DefaultAnimationDuration = carousel.DefaultAnimationDuration
	// LabelPadding is added on each side of a measured label when an item
	// has no width.
	LabelPadding = 24
)

// Config is the raw content of carousel.yaml.
type Config struct {
	Title         string  `yaml:"title,omitempty"`
	Strategy      string  `yaml:"strategy,omitempty"`
	Preview       *float64 `yaml:"preview,omitempty"`
	InitialMargin *float64 `yaml:"initial_margin,omitempty"`
	Margin        *float64 `yaml:"margin,omitempty"`
	Viewport      float64  `yaml:"viewport,omitempty"`
	DragThreshold float64  `yaml:"drag_threshold,omitempty"`
	Animations    *bool    `yaml:"animations,omitempty"`
	AnimationMS   int      `yaml:"animation_ms,omitempty"`
	Start         int      `yaml:"start,omitempty"`
	Items         []Item   `yaml:"items"`
	Script        []Step   `yaml:"script,omitempty"`
}

// Item describes one carousel item.
type Item struct {
	Label  string  `yaml:"label"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Step is one scripted action.
type Step struct {
	Action   Action  `yaml:"action"`
	Dx       float64 `yaml:"dx,omitempty"`
	Dy       float64 `yaml:"dy,omitempty"`
	Index    int     `yaml:"index,omitempty"`
	Animated *bool   `yaml:"animated,omitempty"`
	Item     *Item   `yaml:"item,omitempty"`
	Viewport float64 `yaml:"viewport,omitempty"`
	Strategy string  `yaml:"strategy,omitempty"`
}

// Action names a scripted step.
type Action string

// Supported actions.
const (
	ActionDrag        Action = "drag"
	ActionSetPosition Action = "set_position"
	ActionInsert      Action = "insert"
	ActionRemove      Action = "remove"
	ActionChange      Action = "change"
	ActionTap         Action = "tap"
	ActionLongPress   Action = "long_press"
	ActionReload      Action = "reload"
	ActionResize      Action = "resize"
	ActionStrategy    Action = "strategy"
)

var actions = []Action{
	ActionDrag, ActionSetPosition, ActionInsert, ActionRemove, ActionChange,
	ActionTap, ActionLongPress, ActionReload, ActionResize, ActionStrategy,
}

// Resolved contains validated configuration with defaults applied.
type Resolved struct {
	Path              string
	ModulePath        string
	Title             string
	Strategy          layout.Strategy
	Viewport          float64
	DragThreshold     float64
	Animations        bool
	AnimationDuration time.Duration
	Start             int
	Items             []Item
	Script            []Step
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes carousel.yaml content. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads path, or carousel.yaml in the working directory when path
// is empty, and applies defaults. A missing default file yields a demo
// carousel.
func Resolve(path string) (*Resolved, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	cfg, err := Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg = Demo()
	default:
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	r.Path = abs
	if root, err := FindModuleRoot(filepath.Dir(abs)); err == nil {
		r.ModulePath, _ = modulePath(root)
	}
	if strings.TrimSpace(cfg.Title) == "" {
		r.Title = defaultTitle(r.ModulePath)
	}
	return r, nil
}

// Demo returns the carousel used when no configuration file exists.
func Demo() *Config {
	cfg := &Config{}
	for _, label := range []string{"aurora", "basalt", "cirrus", "dune", "ember"} {
		cfg.Items = append(cfg.Items, Item{Label: label, Width: 150})
	}
	return cfg
}

// Resolve validates c and applies defaults.
func (c *Config) Resolve() (*Resolved, error) {
	kind, err := layout.ParseKind(c.Strategy)
	if err != nil {
		return nil, err
	}
	for _, v := range []*float64{c.Preview, c.InitialMargin, c.Margin} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("preview and margins must not be negative, got %v", *v)
		}
	}
	strategy, err := layout.New(kind, layout.Params{
		Preview:       c.Preview,
		InitialMargin: c.InitialMargin,
		Margin:        c.Margin,
	})
	if err != nil {
		return nil, err
	}

	viewport := c.Viewport
	if viewport == 0 {
		viewport = DefaultViewport
	}
	if viewport < 0 {
		return nil, fmt.Errorf("viewport must be positive, got %v", viewport)
	}
	if c.DragThreshold < 0 {
		return nil, fmt.Errorf("drag_threshold must not be negative, got %v", c.DragThreshold)
	}
	if c.AnimationMS < 0 {
		return nil, fmt.Errorf("animation_ms must not be negative, got %d", c.AnimationMS)
	}
	duration := DefaultAnimationDuration
	if c.AnimationMS > 0 {
		duration = time.Duration(c.AnimationMS) * time.Millisecond
	}

	items := make([]Item, len(c.Items))
	for i, it := range c.Items {
		item, err := it.Resolve()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items[i] = item
	}
	if (len(items) > 0 && (c.Start < 0 || c.Start >= len(items))) || (len(items) == 0 && c.Start != 0) {
		return nil, fmt.Errorf("start %d out of range for %d items", c.Start, len(items))
	}

	script := make([]Step, len(c.Script))
	for i, step := range c.Script {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("script[%d]: %w", i, err)
		}
		if step.Item != nil {
			item, err := step.Item.Resolve()
			if err != nil {
				return nil, fmt.Errorf("script[%d].item: %w", i, err)
			}
			step.Item = &item
		}
		script[i] = step
	}

	return &Resolved{
		Title:             strings.TrimSpace(c.Title),
		Strategy:          strategy,
		Viewport:          viewport,
		DragThreshold:     c.DragThreshold,
		Animations:        c.Animations == nil || *c.Animations,
		AnimationDuration: duration,
		Start:             c.Start,
		Items:             items,
		Script:            script,
	}, nil
}

// Resolve validates it and fills in a missing width from its label and a
// missing height from DefaultItemHeight.
func (it Item) Resolve() (Item, error) {
	it.Label = strings.TrimSpace(it.Label)
	if it.Width < 0 || it.Height < 0 {
		return it, fmt.Errorf("size must not be negative, got %vx%v", it.Width, it.Height)
	}
	if it.Width == 0 {
		if it.Label == "" {
			return it, fmt.Errorf("width is required for an unlabelled item")
		}
		it.Width = raster.MeasureLabel(it.Label) + 2*LabelPadding
	}
	if it.Height == 0 {
		it.Height = DefaultItemHeight
	}
	return it, nil
}

func (s Step) validate() error {
	if !slices.Contains(actions, s.Action) {
		return fmt.Errorf("unknown action %q", s.Action)
	}
	switch s.Action {
	case ActionResize:
		if s.Viewport <= 0 {
			return fmt.Errorf("resize needs a positive viewport")
		}
	case ActionStrategy:
		if _, err := layout.ParseKind(s.Strategy); err != nil {
			return err
		}
	case ActionInsert, ActionChange:
		if s.Item == nil {
			return fmt.Errorf("%s needs an item", s.Action)
		}
	}
	return nil
}

// IsAnimated reports whether the step animates; the default is true.
func (s Step) IsAnimated() bool {
	return s.Animated == nil || *s.Animated
}

// FindModuleRoot walks up from dir to the nearest directory holding go.mod.
func FindModuleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultTitle is the last element of the module path, without any major
// version suffix.
func defaultTitle(modulePath string) string {
	if modulePath == "" {
		return "carousel"
	}
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok {
		prefix = modulePath
	}
	parts := strings.Split(prefix, "/")
	return parts[len(parts)-1]
}
