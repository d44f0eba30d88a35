// Package cmd implements the carousel CLI commands.
//
// The root command dispatches to subcommands (layout, simulate, render,
// tui), each registered from its own file.
package cmd

import (
	"fmt"
	"io"
	"os"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Output is where commands print. Tests replace it.
var Output io.Writer = os.Stdout

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "carousel",
	Short: "Carousel layout and scroll simulator",
	Long: `carousel positions a row of items around a selected one and scrolls
between them one step at a time, the way a touch carousel does.

Items, layout and an optional script of gestures and data changes are read
from carousel.yaml in the working directory, or the file given by --config.

Use "carousel <command> --help" for more information about a command.`,
	Usage: "carousel <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:])
}

// Run executes the command named by args[0].
func Run(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}
	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(Output, "carousel version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	w := Output
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Configuration file (default: ./carousel.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  carousel layout --position 2     Print item centers with item 2 selected")
	fmt.Fprintln(w, "  carousel simulate                Run the configured script")
	fmt.Fprintln(w, "  carousel render --out deck.png   Draw the carousel to a PNG")
	fmt.Fprintln(w, "  carousel tui                     Drive the carousel in the terminal")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(Output, cmd.Long)
	fmt.Fprintln(Output)
	fmt.Fprintln(Output, "Usage:")
	fmt.Fprintf(Output, "  %s\n", cmd.Usage)
}
