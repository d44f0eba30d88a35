package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/registry"
	"github.com/go-drift/carousel/pkg/term"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tui",
		Short: "Drive the carousel in the terminal",
		Long: `Open the configured carousel full screen in the terminal.

Drag items with the mouse or use the keyboard:
  ←/→, h/l        Scroll one item
  home/end        Jump to the first or last item
  enter           Tap the selected item
  i, d, r         Insert after, remove or replace the selected item
  s               Switch between centered and left-bound layouts
  a               Toggle animations
  q               Quit

One terminal column is 8 points wide; the viewport follows the window.

Flags:
  --config FILE   Configuration file (default: ./carousel.yaml)
  --position N    Start at item N instead of the configured start`,
		Usage: "carousel tui [--config FILE] [--position N]",
		Run:   runTUI,
	})
}

func runTUI(args []string) error {
	opts, err := parseCommonArgs(args)
	if err != nil {
		return err
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	model, err := newTUIModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// newTUIModel builds the terminal model. The terminal is owned by the
// program while it runs, so warnings are recorded and shown by the model.
func newTUIModel(cfg *config.Resolved) (term.Model, error) {
	surface := term.NewSurface(nil)
	diag := &errors.Recorder{}
	ctrl, provider, err := newController(cfg, surface, nil, diag)
	if err != nil {
		return term.Model{}, err
	}
	height := float64(config.DefaultItemHeight)
	if len(cfg.Items) > 0 {
		height = cfg.Items[0].Height
	}
	return term.New(term.Options{
		Title:       cfg.Title,
		Controller:  ctrl,
		Provider:    provider,
		Surface:     surface,
		Diagnostics: diag,
		NewItem: func(n int) *registry.Item {
			it, _ := config.Item{Label: fmt.Sprintf("new-%d", n), Height: height}.Resolve()
			return newItem(it)
		},
	}), nil
}
