package cmd

import (
	"fmt"
	"io"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print where every item is placed",
		Long: `Lay the configured items out and print each item's center and
horizontal extent, marking the selected item with "*".

Flags:
  --config FILE   Configuration file (default: ./carousel.yaml)
  --position N    Select item N instead of the configured start`,
		Usage: "carousel layout [--config FILE] [--position N]",
		Run:   runLayout,
	})
}

func runLayout(args []string) error {
	opts, err := parseCommonArgs(args)
	if err != nil {
		return err
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	ctrl, _, err := newController(cfg, nil, nil, &errors.LogHandler{Verbose: opts.verbose})
	if err != nil {
		return err
	}
	fmt.Fprintf(Output, "%s: %v layout, viewport %g\n", cfg.Title, ctrl.Strategy().Kind(), ctrl.ViewportWidth())
	printPlacement(Output, ctrl)
	return nil
}

// printPlacement writes one row per item with its committed frame.
func printPlacement(w io.Writer, ctrl *carousel.Controller) {
	fmt.Fprintf(w, "  %3s  %-12s %9s %9s %9s\n", "POS", "LABEL", "CENTER", "LEFT", "RIGHT")
	selected := ctrl.SelectedItem()
	for _, item := range ctrl.Items() {
		mark := " "
		if item == selected {
			mark = "*"
		}
		loc, _ := item.LastCommittedLocation()
		frame := item.Frame()
		fmt.Fprintf(w, "%s %3d  %-12v %9.1f %9.1f %9.1f\n", mark, item.Position(), item.Content, loc.X, frame.Left, frame.Right)
	}
}
