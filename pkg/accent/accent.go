// Package accent reduces a decoded video frame to a single representative color
// used to tint the tray icon.
package accent

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// alphaCutoff is the normalized alpha at or below which a pixel counts as background.
const alphaCutoff = 0.1

// Color is an opaque RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Fallback is returned when a frame carries no usable pixels or could not be decoded.
var Fallback = Color{R: 0.29, G: 0.56, B: 0.89}

// NRGBA returns c as an opaque 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

// Hex returns c formatted as #rrggbb.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// IsFallback reports whether c is the fallback color.
func (c Color) IsFallback() bool {
	return c == Fallback
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Sample averages the RGB channels of an RGBA buffer of w*h pixels with a row
// stride of w*4, skipping near-transparent pixels. Trailing bytes that do not
// form a whole pixel are ignored.
func Sample(pix []byte, w, h int) Color {
	if w <= 0 || h <= 0 {
		return Fallback
	}
	n := w * h
	if avail := len(pix) / 4; avail < n {
		n = avail
	}

	var rSum, gSum, bSum, count uint64
	for i := 0; i < n; i++ {
		off := i * 4
		if float64(pix[off+3])/255 <= alphaCutoff {
			continue
		}
		rSum += uint64(pix[off])
		gSum += uint64(pix[off+1])
		bSum += uint64(pix[off+2])
		count++
	}
	if count == 0 {
		return Fallback
	}

	c := float64(count)
	return Color{
		R: float64(rSum) / c / 255,
		G: float64(gSum) / c / 255,
		B: float64(bSum) / c / 255,
	}
}

// SampleImage samples any decoded image. A nil image yields the fallback.
func SampleImage(img image.Image) Color {
	if img == nil {
		return Fallback
	}
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = imaging.Clone(img)
	}
	return Sample(nrgba.Pix, b.Dx(), b.Dy())
}
