package ui

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// trayIconSize is the edge length of the rendered tray icon in pixels.
const trayIconSize = 64

// tintIcon scales the template glyph src to size x size and paints every visible
// pixel with c, keeping the glyph's alpha mask.
func tintIcon(src image.Image, c color.NRGBA, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		if dst.Pix[i+3] == 0 {
			continue
		}
		dst.Pix[i] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
	}
	return dst
}

// encodePNG encodes img as PNG.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
