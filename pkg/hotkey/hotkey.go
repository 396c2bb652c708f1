// Package hotkey registers the global play/pause shortcut.
package hotkey

import (
	"context"
	"errors"
	"time"
)

// DebounceInterval is the minimum time between two handled key presses.
const DebounceInterval = 200 * time.Millisecond

// ErrUnsupported is returned on platforms without global hotkey support.
var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

// listen calls action for each event, dropping events that arrive within wait of the last handled one.
func listen[T any](ctx context.Context, events <-chan T, wait time.Duration, now func() time.Time, action func()) {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			t := now()
			if !last.IsZero() && t.Sub(last) < wait {
				continue
			}
			last = t
			action()
		}
	}
}
