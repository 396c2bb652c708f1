package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Reel/util/log"
	"github.com/muesli/smartcrop"
)

// Default thumbnail size shown in the preferences window.
const (
	ThumbnailWidth  = 320
	ThumbnailHeight = 180
)

// Thumbnail crops img to the most interesting w:h region and scales it to w x h,
// returning PNG bytes.
func Thumbnail(img image.Image, w, h int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("thumbnail: nil image")
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("thumbnail: invalid size %dx%d", w, h)
	}

	var thumb image.Image
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: imaging.Lanczos})
	crop, err := analyzer.FindBestCrop(img, w, h)
	if err != nil {
		log.Debugf("smartcrop failed, using center fill: %v", err)
		thumb = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	} else {
		thumb = imaging.Resize(imaging.Crop(img, crop), w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// resizer implements the smartcrop.Resizer interface on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize scales img to width x height.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
