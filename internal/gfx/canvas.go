// Package gfx defines the drawing surface the world and toolbar render onto.
// Hosts provide the implementation.
package gfx

import "image/color"

// Canvas is a 2D surface in window pixel coordinates, origin top-left.
type Canvas interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	Circle(x, y, r float32, c color.RGBA)
	Rect(x, y, w, h int, c color.RGBA)
	RectLines(x, y, w, h int, c color.RGBA)
	Text(s string, x, y, size int, c color.RGBA)
}

// Monochrome theme.
var (
	ColBg      = color.RGBA{10, 10, 10, 255}
	ColPanel   = color.RGBA{22, 22, 22, 255}
	ColAccent  = color.RGBA{180, 180, 180, 255}
	ColSelect  = color.RGBA{255, 255, 255, 255}
	ColText    = color.RGBA{140, 140, 140, 255}
	ColTextDim = color.RGBA{60, 60, 60, 255}
	ColGrid    = color.RGBA{30, 30, 30, 255}
	ColWarn    = color.RGBA{230, 120, 60, 255}
)

// Speed maps a normalized speed (0-1) onto a cold-to-hot ramp.
func Speed(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(80 + 175*t),
		G: uint8(140 + 60*(1-t)),
		B: uint8(255 - 200*t),
		A: 255,
	}
}
