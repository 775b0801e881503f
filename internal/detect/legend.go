package detect

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// LegendEngine recognizes keycap legends with Tesseract.
type LegendEngine struct {
	client *gosseract.Client
}

// NewLegendEngine creates an OCR engine tuned for keycap legends.
func NewLegendEngine() (*LegendEngine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	// Legends are not dictionary words; keep Tesseract from "fixing" them
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	return &LegendEngine{client: client}, nil
}

// Close releases OCR resources.
func (e *LegendEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize performs OCR on one keycap region and returns the cleaned
// legend text, empty when nothing readable is found.
func (e *LegendEngine) Recognize(img gocv.Mat, bounds geometry.RectInt) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}

	x := max(bounds.X, 0)
	y := max(bounds.Y, 0)
	w := min(bounds.Width, img.Cols()-x)
	h := min(bounds.Height, img.Rows()-y)
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("region outside image")
	}

	region := img.Region(image.Rect(x, y, x+w, y+h))
	defer region.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}
	defer buf.Close()

	// A keycap carries at most a couple of glyphs
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// sanitizeLegend keeps only printable legend characters.
func sanitizeLegend(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// FileWithLegends runs detection on an image file and then OCRs the
// keycap legends into the detected layout.
func FileWithLegends(path string, params Params) (*Result, error) {
	mat, err := fileMat(path)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	result, err := Mat(mat, params)
	if err != nil {
		return nil, err
	}
	if err := AnnotateLegends(mat, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AnnotateLegends runs OCR over every detected keycap and writes the
// recognized text into the center legend slot. Unreadable caps are left
// blank; OCR failures on individual caps do not abort the pass.
func AnnotateLegends(img gocv.Mat, result *Result) error {
	engine, err := NewLegendEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	for i, r := range result.Keycaps {
		if i >= len(result.Layout.Keys) {
			break
		}
		text, err := engine.Recognize(img, r)
		if err != nil {
			continue
		}
		result.Layout.Keys[i].Labels[layout.SlotCenterLegend] = sanitizeLegend(text)
	}
	return nil
}
