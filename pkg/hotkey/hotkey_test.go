package hotkey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListenDebounce(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []time.Duration
		want    int
	}{
		{"Single press", []time.Duration{0}, 1},
		{"Bounce is dropped", []time.Duration{0, 50 * time.Millisecond, 150 * time.Millisecond}, 1},
		{"Spaced presses", []time.Duration{0, 200 * time.Millisecond, 450 * time.Millisecond}, 3},
		{"Bounce after second press", []time.Duration{0, 300 * time.Millisecond, 400 * time.Millisecond}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make(chan struct{}, len(tt.offsets))
			for range tt.offsets {
				events <- struct{}{}
			}
			close(events)

			i := 0
			now := func() time.Time {
				ts := base.Add(tt.offsets[i])
				i++
				return ts
			}
			calls := 0
			listen(context.Background(), events, DebounceInterval, now, func() { calls++ })
			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestListenStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		listen(ctx, make(chan struct{}), DebounceInterval, time.Now, func() {})
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listen did not return after cancel")
	}
}

func TestStopWithoutStart(t *testing.T) {
	l := NewListener()
	assert.NotPanics(t, l.Stop)
}
