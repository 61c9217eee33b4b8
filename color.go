package renderterm

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triplet with components in [0, 1]. Every code
// point stored by the screen carries one Color.
type Color struct {
	R, G, B float32
}

// Common colors.
var (
	ColorWhite = Color{1, 1, 1}
	ColorBlack = Color{0, 0, 0}
	ColorRed   = Color{1, 0, 0}
	ColorGreen = Color{0, 1, 0}
	ColorBlue  = Color{0, 0, 1}
)

// RGBA converts the linear triplet to an 8-bit sRGB color for raster
// backends. Components outside [0, 1] are clamped.
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
