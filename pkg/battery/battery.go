// Package battery reads the power source state and stops work when the battery runs low.
package battery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dixieflatline76/Reel/util/log"
)

// ErrNoBattery is returned on machines without a readable battery.
var ErrNoBattery = errors.New("no battery found")

// DefaultPollInterval is how often the Monitor samples the battery.
const DefaultPollInterval = time.Minute

// Status is a snapshot of the power source.
type Status struct {
	Percent   int  // Charge level, 0-100
	Charging  bool // Battery is charging
	OnBattery bool // Running from battery rather than AC
}

// Reader returns the current battery status.
type Reader interface {
	Read(ctx context.Context) (Status, error)
}

// Settings supplies the user's battery preferences on every poll.
type Settings interface {
	GetBatteryLimitEnabled() bool
	GetBatteryThreshold() int
}

// Monitor polls a Reader and reports transitions into and out of the low state.
type Monitor struct {
	reader      Reader
	settings    Settings
	interval    time.Duration
	onLow       func(Status)
	onRecovered func(Status)

	mu     sync.Mutex
	low    bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a Monitor. onLow and onRecovered may be nil.
func NewMonitor(r Reader, s Settings, onLow, onRecovered func(Status)) *Monitor {
	return &Monitor{
		reader:      r,
		settings:    s,
		interval:    DefaultPollInterval,
		onLow:       onLow,
		onRecovered: onRecovered,
	}
}

// SetInterval changes the poll interval. It must be called before Start.
func (m *Monitor) SetInterval(d time.Duration) {
	m.interval = d
}

// IsLow reports whether the monitor is currently in the low state.
func (m *Monitor) IsLow() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.low
}

// Start begins polling in the background. Calling Start twice is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop halts polling and waits for the poll loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log.Print("Starting battery monitor...")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			log.Print("Stopping battery monitor.")
			return
		}
	}
}

// Check samples the battery once and fires the callbacks on state transitions.
func (m *Monitor) Check(ctx context.Context) {
	st, err := m.reader.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoBattery) {
			log.Printf("battery read failed: %v", err)
		}
		m.transition(false, st)
		return
	}

	low := m.settings.GetBatteryLimitEnabled() &&
		st.OnBattery && !st.Charging &&
		st.Percent <= m.settings.GetBatteryThreshold()
	m.transition(low, st)
}

func (m *Monitor) transition(low bool, st Status) {
	m.mu.Lock()
	changed := m.low != low
	m.low = low
	m.mu.Unlock()

	if !changed {
		return
	}
	if low {
		log.Printf("Battery low (%d%%), entering power saving.", st.Percent)
		if m.onLow != nil {
			m.onLow(st)
		}
		return
	}
	log.Printf("Battery recovered (%d%%, on battery: %v).", st.Percent, st.OnBattery)
	if m.onRecovered != nil {
		m.onRecovered(st)
	}
}
