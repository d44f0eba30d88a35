package cmd

import (
	"fmt"
	"io"
	"os"
)

// renderPadding is blank space added below the tallest item, twice over.
const renderPadding = 16

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Draw the carousel to a PNG",
		Long: `Lay the configured items out and draw the visible part of the
carousel to a PNG image as wide as the viewport.

Flags:
  --config FILE   Configuration file (default: ./carousel.yaml)
  --position N    Select item N instead of the configured start
  --out FILE      Output file (default: carousel.png, "-" for stdout)
  --height H      Image height in pixels (default: tallest item plus padding)
  --script        Run the configured script before drawing`,
		Usage: "carousel render [--config FILE] [--position N] [--out FILE] [--height H] [--script]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	opts, err := parseCommonArgs(args)
	if err != nil {
		return err
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	log := io.Discard
	if opts.script {
		log = Output
	}
	sim, err := newSimulation(log, cfg, opts.verbose)
	if err != nil {
		return err
	}
	if opts.script {
		sim.run(cfg.Script)
	}

	width := int(cfg.Viewport)
	height := opts.height
	if height == 0 {
		for _, item := range sim.ctrl.Items() {
			height = max(height, int(item.Size.Height))
		}
		height += 2 * renderPadding
	}

	out := opts.out
	if out == "" {
		out = "carousel.png"
	}
	if out == "-" {
		return sim.surface.WritePNG(Output, sim.ctrl.Items(), sim.ctrl.SelectedItem(), width, height)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := sim.surface.WritePNG(f, sim.ctrl.Items(), sim.ctrl.SelectedItem(), width, height); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(Output, "wrote %s (%dx%d)\n", out, width, height)
	return nil
}
