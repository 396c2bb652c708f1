// Package frame extracts still frames and thumbnails from video files using ffmpeg.
package frame

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dixieflatline76/Reel/util/log"
)

// ErrNoFrame is returned when ffmpeg produced no decodable frame.
var ErrNoFrame = errors.New("no frame decoded")

// videoExts lists the container extensions accepted as wallpaper videos.
var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".m4v":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// VideoExtensions returns the accepted video file extensions.
func VideoExtensions() []string {
	return []string{".mp4", ".mov", ".m4v", ".webm", ".mkv", ".avi"}
}

// IsVideoFile reports whether path has a supported video extension.
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec and folds stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s error: %w, output: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Extractor decodes single frames out of video files.
type Extractor struct {
	ffmpeg  string
	ffprobe string
	run     Runner
}

// NewExtractor creates an Extractor using ffmpeg and ffprobe from PATH.
func NewExtractor() *Extractor {
	return &Extractor{ffmpeg: "ffmpeg", ffprobe: "ffprobe", run: ExecRunner}
}

// NewExtractorWithRunner creates an Extractor that executes commands through run.
func NewExtractorWithRunner(run Runner) *Extractor {
	return &Extractor{ffmpeg: "ffmpeg", ffprobe: "ffprobe", run: run}
}

// FirstFrame decodes the first frame of the video at path.
func (e *Extractor) FirstFrame(ctx context.Context, path string) (image.Image, error) {
	return e.FrameAt(ctx, path, 0)
}

// FrameAt decodes the frame of the video at path closest to ts.
func (e *Extractor) FrameAt(ctx context.Context, path string, ts time.Duration) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file: %w", err)
	}

	out, err := e.run(ctx, e.ffmpeg,
		"-v", "error",
		"-ss", formatTimestamp(ts),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoFrame
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	log.Debugf("decoded frame %dx%d at %s from %s", img.Bounds().Dx(), img.Bounds().Dy(), ts, path)
	return img, nil
}

// Duration returns the container duration of the video at path.
func (e *Extractor) Duration(ctx context.Context, path string) (time.Duration, error) {
	out, err := e.run(ctx, e.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseDuration(string(out))
}

func parseDuration(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("parse duration: non-positive value %v", secs)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func formatTimestamp(ts time.Duration) string {
	if ts < 0 {
		ts = 0
	}
	return strconv.FormatFloat(ts.Seconds(), 'f', 3, 64)
}
