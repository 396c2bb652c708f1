// Package still sets a static desktop picture taken from the wallpaper video, so
// the desktop is not left blank while the video is not playing.
package still

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Reel/pkg/frame"
	"github.com/dixieflatline76/Reel/util/log"
)

// ErrUnsupported is returned when the desktop picture cannot be set on this system.
var ErrUnsupported = errors.New("setting the desktop picture is not supported here")

// FrameSource extracts the poster frame of a video.
type FrameSource interface {
	FirstFrame(ctx context.Context, path string) (image.Image, error)
}

// Setter applies an image file as the desktop picture.
type Setter interface {
	SetWallpaper(ctx context.Context, imagePath string) error
}

// ScreenFunc returns the primary screen size in pixels.
type ScreenFunc func(ctx context.Context) (int, int, error)

// Poster renders video stills and applies them as the desktop picture.
type Poster struct {
	frames FrameSource
	setter Setter
	screen ScreenFunc
	dir    string
}

// NewPoster creates a Poster writing stills into dir, using the platform setter.
func NewPoster(frames FrameSource, dir string) *Poster {
	return NewPosterWith(frames, newPlatformSetter(frame.ExecRunner), platformScreen(frame.ExecRunner), dir)
}

// NewPosterWith creates a Poster with explicit collaborators.
func NewPosterWith(frames FrameSource, setter Setter, screen ScreenFunc, dir string) *Poster {
	return &Poster{frames: frames, setter: setter, screen: screen, dir: dir}
}

// Apply renders the first frame of videoPath at screen size and sets it as the
// desktop picture. It returns the written image path.
func (p *Poster) Apply(ctx context.Context, videoPath string) (string, error) {
	img, err := p.frames.FirstFrame(ctx, videoPath)
	if err != nil {
		return "", fmt.Errorf("extracting still: %w", err)
	}

	w, h, err := p.screen(ctx)
	if err != nil || w <= 0 || h <= 0 {
		log.Debugf("Screen size unavailable (%v), using frame size", err)
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		img = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	}

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("creating still directory: %w", err)
	}
	out := filepath.Join(p.dir, stillName(videoPath))
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("saving still: %w", err)
	}

	if err := p.setter.SetWallpaper(ctx, out); err != nil {
		return out, fmt.Errorf("setting desktop picture: %w", err)
	}
	log.Printf("Desktop picture set to still of %s", filepath.Base(videoPath))
	return out, nil
}

// stillName derives a per-video file name. A new path per video makes desktops
// that cache the picture by path pick up the change.
func stillName(videoPath string) string {
	sum := sha1.Sum([]byte(videoPath))
	return "still-" + hex.EncodeToString(sum[:6]) + ".png"
}
