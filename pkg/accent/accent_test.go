package accent

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, r, g, b, a byte) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		buf[i*4] = r
		buf[i*4+1] = g
		buf[i*4+2] = b
		buf[i*4+3] = a
	}
	return buf
}

func assertColor(t *testing.T, want, got Color) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1e-9)
	assert.InDelta(t, want.G, got.G, 1e-9)
	assert.InDelta(t, want.B, got.B, 1e-9)
}

func TestSampleTransparentFrames(t *testing.T) {
	tests := []struct {
		name  string
		alpha byte
	}{
		{name: "Fully transparent", alpha: 0},
		{name: "Alpha 10", alpha: 10},
		{name: "Alpha 25 (0.098)", alpha: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(solid(8, 4, 255, 0, 0, tt.alpha), 8, 4)
			assert.Equal(t, Fallback, got)
			assert.True(t, got.IsFallback())
		})
	}
}

func TestSampleAlphaCutoff(t *testing.T) {
	// 26/255 is just above the cutoff and must be counted.
	got := Sample(solid(1, 1, 10, 20, 30, 26), 1, 1)
	assertColor(t, Color{R: 10.0 / 255, G: 20.0 / 255, B: 30.0 / 255}, got)
}

func TestSampleUniform(t *testing.T) {
	got := Sample(solid(16, 9, 51, 102, 204, 255), 16, 9)
	assertColor(t, Color{R: 0.2, G: 0.4, B: 0.8}, got)
}

func TestSampleHalfRedHalfBlue(t *testing.T) {
	w, h := 4, 2
	buf := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				buf = append(buf, 255, 0, 0, 255)
			} else {
				buf = append(buf, 0, 0, 255, 255)
			}
		}
	}
	assertColor(t, Color{R: 0.5, G: 0, B: 0.5}, Sample(buf, w, h))
}

func TestSampleSinglePixel(t *testing.T) {
	got := Sample([]byte{200, 100, 50, 255}, 1, 1)
	assert.InDelta(t, 0.784, got.R, 0.001)
	assert.InDelta(t, 0.392, got.G, 0.001)
	assert.InDelta(t, 0.196, got.B, 0.001)
}

func TestSampleOnlyOpaqueCounted(t *testing.T) {
	buf := []byte{
		0, 0, 0, 0, 12, 200, 7, 0,
		255, 255, 255, 255, 90, 90, 90, 0,
	}
	assertColor(t, Color{R: 1, G: 1, B: 1}, Sample(buf, 2, 2))
}

func TestSampleDeterministic(t *testing.T) {
	buf := make([]byte, 32*32*4)
	for i := range buf {
		buf[i] = byte(i * 31)
	}
	first := Sample(buf, 32, 32)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Sample(buf, 32, 32))
	}
}

func TestSampleDegenerateInput(t *testing.T) {
	assert.Equal(t, Fallback, Sample(nil, 0, 0))
	assert.Equal(t, Fallback, Sample(nil, 4, 4))
	assert.Equal(t, Fallback, Sample([]byte{1, 2, 3, 255}, -1, 1))

	// Short buffer: only the whole pixels present are sampled.
	got := Sample([]byte{255, 0, 0, 255, 9, 9}, 2, 2)
	assertColor(t, Color{R: 1, G: 0, B: 0}, got)
}

func TestSampleImage(t *testing.T) {
	t.Run("Nil image", func(t *testing.T) {
		assert.Equal(t, Fallback, SampleImage(nil))
	})

	t.Run("RGBA image", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 3, 3))
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
			}
		}
		got := SampleImage(img)
		assertColor(t, Color{R: 200.0 / 255, G: 100.0 / 255, B: 50.0 / 255}, got)
	})

	t.Run("Offset sub image", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				c := color.NRGBA{R: 0, G: 0, B: 255, A: 255}
				if x >= 2 && y >= 2 {
					c = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
				}
				img.SetNRGBA(x, y, c)
			}
		}
		sub := img.SubImage(image.Rect(2, 2, 4, 4))
		assertColor(t, Color{R: 0, G: 1, B: 0}, SampleImage(sub))
	})

	t.Run("Transparent image", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
		assert.Equal(t, Fallback, SampleImage(img))
	})
}

func TestColorConversions(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0}
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, c.NRGBA())
	assert.Equal(t, "#ff8000", c.Hex())

	// Out of range channels are clamped.
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, Color{R: 2, G: -1, B: 0}.NRGBA())
}
