//go:build darwin || windows

package hotkey

import (
	"context"
	"sync"
	"time"

	"github.com/dixieflatline76/Reel/util/log"
	"golang.design/x/hotkey"
)

// Listener owns the registered play/pause shortcut.
type Listener struct {
	mu     sync.Mutex
	hk     *hotkey.Hotkey
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates an idle Listener.
func NewListener() *Listener {
	return &Listener{}
}

// Start registers Ctrl+Alt+Up (Cmd+Option+Up on macOS) and calls toggle on every
// debounced key press until Stop is called.
func (l *Listener) Start(toggle func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hk != nil {
		return nil
	}

	if !HasAccessibility() {
		log.Print("Accessibility permission not granted, the play/pause shortcut may not fire.")
	}

	hk := hotkey.New([]hotkey.Modifier{modCtrl, modAlt}, keyUp)
	if err := hk.Register(); err != nil {
		return err
	}
	log.Print("Registered hotkey: Play/Pause Wallpaper")

	ctx, cancel := context.WithCancel(context.Background())
	l.hk, l.cancel, l.done = hk, cancel, make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		listen(ctx, hk.Keydown(), DebounceInterval, time.Now, func() {
			log.Debugf("Hotkey pressed: Play/Pause Wallpaper")
			toggle()
		})
	}(l.done)
	return nil
}

// Stop unregisters the shortcut.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hk == nil {
		return
	}
	l.cancel()
	<-l.done
	if err := l.hk.Unregister(); err != nil {
		log.Printf("Failed to unregister hotkey: %v", err)
	}
	l.hk, l.cancel, l.done = nil, nil, nil
}
