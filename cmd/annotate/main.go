// Command annotate runs the matrix engine headless: it loads a layout,
// optionally auto-annotates it, validates the result, and writes the
// layout and an optional PNG snapshot back out.
package main

import (
	"flag"
	"fmt"
	"os"

	"keymatrix/internal/export"
	"keymatrix/internal/layout"
	"keymatrix/internal/matrix"
)

func main() {
	layoutPath := flag.String("layout", "", "Path to layout JSON")
	outPath := flag.String("out", "", "Output layout path (default: overwrite input)")
	auto := flag.Bool("auto", false, "Auto-annotate rows and columns before validating")
	tolerance := flag.Float64("tolerance", matrix.DefaultSensitivity, "Alignment tolerance in key units")
	snapshot := flag.String("png", "", "Also write a PNG snapshot to this path")
	flag.Parse()

	if *layoutPath == "" {
		fmt.Println("Usage: annotate -layout <path> [-auto] [-tolerance 0.3] [-out <path>] [-png <path>]")
		os.Exit(1)
	}

	l, err := layout.Load(*layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
		os.Exit(1)
	}

	a := matrix.NewAnnotator(matrix.NewStore(l))
	a.Sensitivity = *tolerance
	fmt.Printf("Loaded %s: %d keys (%d annotatable)\n",
		*layoutPath, len(l.Keys), len(a.Store().Keys()))

	if *auto {
		a.AutoAnnotate()
		fmt.Println("Auto-annotated")
	}

	p := a.Store().Progress()
	fmt.Printf("%d rows, %d columns defined; %d keys without row, %d without column\n",
		p.RowsDefined, p.ColsDefined, p.KeysLeftForRows, p.KeysLeftForCols)

	report := a.Store().Validate()
	if report.IsValid {
		fmt.Println("Matrix valid")
	} else {
		fmt.Printf("%d duplicate positions without layout options:\n", len(report.DuplicatesWithoutOption))
		for _, pk := range report.DuplicatesWithoutOption {
			fmt.Printf("  %d,%d shared by %d keys\n", pk.Position.Row, pk.Position.Col, len(pk.Keys))
		}
	}
	for _, pk := range report.ValidLayoutOptions {
		fmt.Printf("Layout options at %d,%d: %d keys\n", pk.Position.Row, pk.Position.Col, len(pk.Keys))
	}

	out := *outPath
	if out == "" {
		out = *layoutPath
	}
	if err := l.Save(out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save layout: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)

	if *snapshot != "" {
		if err := export.WritePNG(*snapshot, a, export.DefaultOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *snapshot)
	}

	if !report.IsValid {
		os.Exit(2)
	}
}
