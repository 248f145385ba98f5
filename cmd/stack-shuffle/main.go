// Command stack-shuffle reconciles stack layout pairs and prints the
// emitted stack-machine operations. With no arguments it runs a built-in
// set of sample scenarios; with a YAML file argument it runs the scenarios
// described there (see the scenario type for the slot syntax).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"github.com/DavidTxx/solidity/yul"
)

var builtinScenarios = []scenario{
	{
		Name:   "swap_two",
		Source: []string{"a", "b"},
		Target: []string{"b", "a"},
	},
	{
		Name:   "dup_variable",
		Source: []string{"a"},
		Target: []string{"a", "a"},
	},
	{
		Name:   "pop_excess",
		Source: []string{"a", "b"},
		Target: []string{"a"},
	},
	{
		Name:   "junk_keeps_middle",
		Source: []string{"a", "b", "c"},
		Target: []string{"c", "JUNK", "a"},
	},
	{
		Name:   "call_frame_setup",
		Source: []string{"RET", "x", "y"},
		Target: []string{"RET", "x", "RET[f]", "y", "x"},
	},
	{
		Name:   "literals_and_temporaries",
		Source: []string{"TMP[f,0]", "TMP[f,1]", "0x20"},
		Target: []string{"0x20", "TMP[f,1]", "TMP[f,0]", "0x0"},
	},
}

func main() {
	level := flag.String("log-level", "", "shuffle trace level: error, warn, info, or debug")
	debug := flag.Bool("v", false, "shorthand for -log-level debug")
	flag.Parse()

	var logger yul.Logger
	switch {
	case *debug:
		logger = yul.NewLogger(yul.LevelDebug, os.Stderr)
	case *level != "":
		logger = yul.NewLogger(yul.ParseLogLevel(*level), os.Stderr)
	}

	scenarios := builtinScenarios
	if flag.NArg() > 0 {
		var err error
		scenarios, err = loadScenarios(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// Reconciliations are independent, so run them concurrently and print
	// the reports in input order afterwards.
	reports := make([]string, len(scenarios))
	var g errgroup.Group
	for i, sc := range scenarios {
		g.Go(func() error {
			report, err := runScenario(sc, logger)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	nameWidth := 0
	for _, sc := range scenarios {
		if w := runewidth.StringWidth(sc.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for i, sc := range scenarios {
		fmt.Printf("=== %s ===\n", header(sc.Name, nameWidth, color))
		fmt.Print(reports[i])
		fmt.Println()
	}
}

func header(name string, width int, color bool) string {
	name = runewidth.FillRight(name, width)
	if color {
		return "\x1b[36m" + name + "\x1b[0m"
	}
	return name
}

// runScenario parses the scenario's layouts, reconciles them, and renders a
// report of the emitted operations. Call-site and declaration identities are
// interned per scenario; a nil logger disables tracing.
func runScenario(sc scenario, logger yul.Logger) (string, error) {
	parser := newSlotParser()
	source, err := parser.parseStack(sc.Source, false)
	if err != nil {
		return "", fmt.Errorf("bad source layout: %w", err)
	}
	target, err := parser.parseStack(sc.Target, true)
	if err != nil {
		return "", fmt.Errorf("bad target layout: %w", err)
	}

	opts := yul.DefaultLayoutOptions()
	if logger != nil {
		opts.Logger = logger
	}

	current := source.Clone()
	rec := yul.NewRecorder(source)
	yul.CreateStackLayout(&current, target, rec.Swap, rec.PushOrDup, rec.Pop, opts)

	var b strings.Builder
	fmt.Fprintf(&b, "source: %s\n", yul.StackString(source))
	fmt.Fprintf(&b, "target: %s\n", yul.StackString(target))
	for i, ev := range rec.Events {
		fmt.Fprintf(&b, "%3d: %s\n", i, ev)
	}
	fmt.Fprintf(&b, "final:  %s\n", yul.StackString(current))
	return b.String(), nil
}
