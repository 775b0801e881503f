// Command detecttest runs keycap detection on a keyboard image and
// outputs the detected layout.
package main

import (
	"flag"
	"fmt"
	"os"

	"keymatrix/internal/detect"
)

func main() {
	imagePath := flag.String("image", "", "Path to keyboard image (TIFF, PNG, or JPEG)")
	outPath := flag.String("out", "", "Write the detected layout JSON to this path")
	ocr := flag.Bool("ocr", false, "Read keycap legends with OCR")
	minFrac := flag.Float64("min-frac", detect.DefaultParams().MinKeyFrac, "Minimum keycap edge as a fraction of image size")
	maxFrac := flag.Float64("max-frac", detect.DefaultParams().MaxKeyFrac, "Maximum keycap edge as a fraction of image size")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: detecttest -image <path> [-ocr] [-out <layout.json>]")
		os.Exit(1)
	}

	params := detect.DefaultParams()
	params.MinKeyFrac = *minFrac
	params.MaxKeyFrac = *maxFrac

	var result *detect.Result
	var err error
	if *ocr {
		result, err = detect.FileWithLegends(*imagePath, params)
	} else {
		result, err = detect.File(*imagePath, params)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Detected %d keycaps, pitch %.1f x %.1f px\n",
		len(result.Keycaps), result.PitchX, result.PitchY)
	fmt.Printf("%-4s %8s %8s %8s %8s\n", "#", "X (u)", "Y (u)", "W (u)", "H (u)")
	for i, k := range result.Layout.Keys {
		fmt.Printf("%-4d %8.2f %8.2f %8.2f %8.2f\n", i+1, k.X, k.Y, k.Width, k.Height)
	}

	if *outPath != "" {
		if err := result.Layout.Save(*outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save layout: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *outPath)
	}
}
