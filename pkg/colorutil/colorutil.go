// Package colorutil provides shared color utilities for the annotator application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	Green   = color.RGBA{R: 0, G: 160, B: 60, A: 255}
	Blue    = color.RGBA{R: 40, G: 80, B: 220, A: 255}
	Yellow  = color.RGBA{R: 240, G: 200, B: 0, A: 255}
	KeyGrey = color.RGBA{R: 204, G: 204, B: 204, A: 255}
)

// ParseHex parses a "#rgb" or "#rrggbb" color string as used in key color
// fields. Returns fallback when the string is empty or malformed.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return fallback
}

// FormatHex formats a color as "#rrggbb".
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance returns the perceived brightness of a color in 0-255.
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// ContrastText returns black or white, whichever reads better on bg.
func ContrastText(bg color.RGBA) color.RGBA {
	if Luminance(bg) > 140 {
		return Black
	}
	return White
}
