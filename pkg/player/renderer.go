package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/dixieflatline76/Reel/config"
)

// ErrPauseUnsupported is returned by Process.Pause where the platform cannot suspend processes.
var ErrPauseUnsupported = errors.New("pause not supported on this platform")

// Renderer launches the process that draws the video behind the desktop windows.
type Renderer interface {
	Start(ctx context.Context, path string, mode config.PlaybackMode) (Process, error)
}

// Process is a running renderer.
type Process interface {
	Pause() error
	Resume() error
	Stop() error
	Wait() error
}

// MPVRenderer renders the wallpaper with an mpv child process.
type MPVRenderer struct {
	Binary string
}

// NewMPVRenderer returns a renderer that runs mpv from PATH.
func NewMPVRenderer() *MPVRenderer {
	return &MPVRenderer{Binary: "mpv"}
}

// Args returns the mpv command line for path in the given mode.
func (r *MPVRenderer) Args(path string, mode config.PlaybackMode) []string {
	args := []string{
		"--loop-file=inf",
		"--no-audio",
		"--no-osc",
		"--no-osd-bar",
		"--no-input-default-bindings",
		"--input-vo-keyboard=no",
		"--really-quiet",
		"--fs",
		"--no-border",
		"--force-window=yes",
		"--stop-screensaver=no",
		"--hwdec=auto-safe",
		"--title=" + config.AppName + " Wallpaper",
	}
	args = append(args, platformArgs()...)

	switch mode {
	case config.PlaybackFit:
		args = append(args, "--keepaspect=yes", "--panscan=0.0")
	case config.PlaybackStretch:
		args = append(args, "--keepaspect=no")
	default:
		args = append(args, "--keepaspect=yes", "--panscan=1.0")
	}
	return append(args, "--", path)
}

// Start launches mpv. The process is killed when ctx is cancelled.
func (r *MPVRenderer) Start(ctx context.Context, path string, mode config.PlaybackMode) (Process, error) {
	cmd := exec.CommandContext(ctx, r.Binary, r.Args(path, mode)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", r.Binary, err)
	}
	return &cmdProcess{cmd: cmd}, nil
}

// cmdProcess wraps an exec.Cmd as a Process.
type cmdProcess struct {
	cmd      *exec.Cmd
	waitOnce sync.Once
	waitErr  error
}

func (p *cmdProcess) Pause() error {
	return suspend(p.cmd.Process)
}

func (p *cmdProcess) Resume() error {
	return resume(p.cmd.Process)
}

// Stop kills the process and reaps it.
func (p *cmdProcess) Stop() error {
	// A stopped process must be continued before it can handle the kill on some platforms.
	_ = resume(p.cmd.Process)
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, errProcessDone) {
		return fmt.Errorf("killing renderer: %w", err)
	}
	_ = p.Wait()
	return nil
}

// Wait blocks until the process exits. It is safe to call more than once.
func (p *cmdProcess) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.cmd.Wait()
	})
	return p.waitErr
}
