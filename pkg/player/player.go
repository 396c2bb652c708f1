// Package player controls the looping video wallpaper and keeps the accent color
// of the current video up to date.
package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/pkg/accent"
	"github.com/dixieflatline76/Reel/pkg/frame"
	"github.com/dixieflatline76/Reel/util/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrNoVideo is returned when there is no video to play.
var ErrNoVideo = errors.New("no video selected")

// ErrNotVideo is returned for files without a supported video extension.
var ErrNotVideo = errors.New("not a supported video file")

// AccentRefreshInterval is the minimum time between loop-triggered accent refreshes.
const AccentRefreshInterval = 30 * time.Second

// frameTimeout bounds a single ffmpeg/ffprobe call.
const frameTimeout = 20 * time.Second

// State is the playback state.
type State int

// State constants
const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// FrameSource extracts frames and metadata from video files.
type FrameSource interface {
	FirstFrame(ctx context.Context, path string) (image.Image, error)
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Selection is the result of preparing a video for playback.
type Selection struct {
	Path      string
	Accent    accent.Color
	Thumbnail []byte
	Duration  time.Duration
}

// Player owns the renderer process for the current wallpaper video.
type Player struct {
	renderer Renderer
	frames   FrameSource

	mu        sync.Mutex
	state     State
	path      string
	mode      config.PlaybackMode
	durations map[string]time.Duration
	proc      Process
	accent    accent.Color
	limiter   *rate.Limiter
	loopStop  context.CancelFunc
	procStop  context.CancelFunc
	stateFns  []func(State)
	accentFns []func(accent.Color)
}

// New creates a Player.
func New(r Renderer, frames FrameSource) *Player {
	return &Player{
		renderer:  r,
		frames:    frames,
		accent:    accent.Fallback,
		limiter:   rate.NewLimiter(rate.Every(AccentRefreshInterval), 1),
		durations: make(map[string]time.Duration),
	}
}

// OnStateChange registers fn to be called after every state transition.
func (p *Player) OnStateChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stateFns = append(p.stateFns, fn)
}

// OnAccent registers fn to be called whenever the accent color is recomputed.
func (p *Player) OnAccent(fn func(accent.Color)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accentFns = append(p.accentFns, fn)
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the path of the loaded video, or "".
func (p *Player) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Accent returns the last computed accent color.
func (p *Player) Accent() accent.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accent
}

// SetMode changes the playback mode, restarting the renderer if it is playing.
// A paused renderer is discarded so that Resume starts over in the new mode.
func (p *Player) SetMode(mode config.PlaybackMode) error {
	p.mu.Lock()
	if p.mode == mode {
		p.mu.Unlock()
		return nil
	}
	p.mode = mode
	if p.state == StatePaused {
		p.killLocked()
	}
	restart := p.state == StatePlaying
	path := p.path
	p.mu.Unlock()

	if restart {
		return p.Play(path)
	}
	return nil
}

// Select validates path and prepares its accent color, thumbnail and duration.
// Frame extraction failures fall back to the default accent and never fail the selection.
func (p *Player) Select(ctx context.Context, path string) (Selection, error) {
	if path == "" {
		return Selection{}, ErrNoVideo
	}
	if !frame.IsVideoFile(path) {
		return Selection{}, fmt.Errorf("%w: %s", ErrNotVideo, path)
	}
	if _, err := os.Stat(path); err != nil {
		return Selection{}, fmt.Errorf("video file: %w", err)
	}

	sel := Selection{Path: path, Accent: accent.Fallback}
	var first image.Image

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, frameTimeout)
		defer cancel()
		img, err := p.frames.FirstFrame(fctx, path)
		if err != nil {
			log.Printf("Failed to extract first frame of %s: %v", path, err)
			return nil
		}
		first = img
		return nil
	})
	g.Go(func() error {
		dctx, cancel := context.WithTimeout(gctx, frameTimeout)
		defer cancel()
		d, err := p.frames.Duration(dctx, path)
		if err != nil {
			log.Printf("Failed to probe duration of %s: %v", path, err)
			return nil
		}
		sel.Duration = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return Selection{}, err
	}
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	if first != nil {
		sel.Accent = accent.SampleImage(first)
		thumb, err := frame.Thumbnail(first, frame.ThumbnailWidth, frame.ThumbnailHeight)
		if err != nil {
			log.Printf("Failed to build thumbnail for %s: %v", path, err)
		} else {
			sel.Thumbnail = thumb
		}
	}

	p.mu.Lock()
	p.durations[path] = sel.Duration
	p.mu.Unlock()
	p.setAccent(sel.Accent)
	return sel, nil
}

// Play starts looping the video at path, replacing whatever is playing.
func (p *Player) Play(path string) error {
	if path == "" {
		return ErrNoVideo
	}

	p.mu.Lock()
	p.stopLocked()
	procCtx, procStop := context.WithCancel(context.Background())
	proc, err := p.renderer.Start(procCtx, path, p.mode)
	if err != nil {
		procStop()
		p.state = StateStopped
		p.mu.Unlock()
		p.notifyState(StateStopped)
		return err
	}
	p.proc = proc
	p.procStop = procStop
	p.path = path
	p.state = StatePlaying
	p.startLoopWatcherLocked()
	p.mu.Unlock()

	log.Printf("Playing wallpaper video %s", path)
	go p.watchExit(proc)
	p.notifyState(StatePlaying)
	return nil
}

// Pause suspends playback.
func (p *Player) Pause() error {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return nil
	}
	p.stopLoopWatcherLocked()
	err := p.proc.Pause()
	if errors.Is(err, ErrPauseUnsupported) {
		// Fall back to stopping; Resume restarts from the beginning.
		p.killLocked()
		err = nil
	}
	if err != nil {
		p.startLoopWatcherLocked()
		p.mu.Unlock()
		return fmt.Errorf("pausing renderer: %w", err)
	}
	p.state = StatePaused
	p.mu.Unlock()

	p.notifyState(StatePaused)
	return nil
}

// Resume continues paused playback.
func (p *Player) Resume() error {
	p.mu.Lock()
	if p.state != StatePaused {
		p.mu.Unlock()
		return nil
	}
	if p.proc == nil {
		path := p.path
		p.mu.Unlock()
		return p.Play(path)
	}
	if err := p.proc.Resume(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("resuming renderer: %w", err)
	}
	p.state = StatePlaying
	p.startLoopWatcherLocked()
	p.mu.Unlock()

	p.notifyState(StatePlaying)
	return nil
}

// Toggle pauses a playing video, resumes a paused one, and starts a stopped one.
func (p *Player) Toggle() error {
	switch p.State() {
	case StatePlaying:
		return p.Pause()
	case StatePaused:
		return p.Resume()
	default:
		return p.Play(p.Current())
	}
}

// Stop terminates the renderer.
func (p *Player) Stop() {
	p.mu.Lock()
	wasStopped := p.state == StateStopped
	p.stopLocked()
	p.mu.Unlock()

	if !wasStopped {
		log.Print("Wallpaper playback stopped.")
		p.notifyState(StateStopped)
	}
}

// Unload stops playback and forgets the current video.
func (p *Player) Unload() {
	p.Stop()
	p.mu.Lock()
	delete(p.durations, p.path)
	p.path = ""
	p.mu.Unlock()
	p.setAccent(accent.Fallback)
}

// RefreshAccent re-samples the first frame of the current video.
// The result is dropped if another video was loaded while sampling.
func (p *Player) RefreshAccent(ctx context.Context) accent.Color {
	path := p.Current()
	if path == "" {
		p.setAccent(accent.Fallback)
		return accent.Fallback
	}

	fctx, cancel := context.WithTimeout(ctx, frameTimeout)
	defer cancel()
	c := accent.Fallback
	img, err := p.frames.FirstFrame(fctx, path)
	if err != nil {
		log.Printf("Accent refresh failed for %s: %v", path, err)
	} else {
		c = accent.SampleImage(img)
	}
	if !p.setAccentFor(path, c) {
		log.Debugf("Discarding accent for %s, video changed while sampling", path)
		return p.Accent()
	}
	return c
}

func (p *Player) stopLocked() {
	p.stopLoopWatcherLocked()
	p.killLocked()
	p.state = StateStopped
}

func (p *Player) killLocked() {
	proc, procStop := p.proc, p.procStop
	p.proc, p.procStop = nil, nil
	if proc != nil {
		if err := proc.Stop(); err != nil {
			log.Printf("Error stopping renderer: %v", err)
		}
	}
	if procStop != nil {
		procStop()
	}
}

// watchExit marks the player stopped if proc exits while it is still the active renderer.
func (p *Player) watchExit(proc Process) {
	err := proc.Wait()

	p.mu.Lock()
	if p.proc != proc {
		p.mu.Unlock()
		return
	}
	p.proc = nil
	if p.procStop != nil {
		p.procStop()
		p.procStop = nil
	}
	p.stopLoopWatcherLocked()
	p.state = StateStopped
	p.mu.Unlock()

	log.Printf("Renderer exited unexpectedly: %v", err)
	p.notifyState(StateStopped)
}

// startLoopWatcherLocked refreshes the accent each time the video wraps around.
func (p *Player) startLoopWatcherLocked() {
	p.stopLoopWatcherLocked()
	d := p.durations[p.path]
	if d <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.loopStop = cancel
	go p.loopWatcher(ctx, d)
}

func (p *Player) stopLoopWatcherLocked() {
	if p.loopStop != nil {
		p.loopStop()
		p.loopStop = nil
	}
}

func (p *Player) loopWatcher(ctx context.Context, d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !p.limiter.Allow() {
				continue
			}
			log.Debugf("Loop restart, refreshing accent color")
			p.RefreshAccent(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Player) setAccent(c accent.Color) {
	p.mu.Lock()
	p.accent = c
	fns := append([]func(accent.Color){}, p.accentFns...)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// setAccentFor stores c only if path is still the loaded video.
func (p *Player) setAccentFor(path string, c accent.Color) bool {
	p.mu.Lock()
	if p.path != path {
		p.mu.Unlock()
		return false
	}
	p.accent = c
	fns := append([]func(accent.Color){}, p.accentFns...)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
	return true
}

func (p *Player) notifyState(s State) {
	p.mu.Lock()
	fns := append([]func(State){}, p.stateFns...)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
