//go:build !darwin && !windows

package hotkey

// Listener is a no-op on platforms without global hotkeys. Linux needs an X11
// display for them and the hotkey library panics at init without one, so it is
// never linked here.
type Listener struct{}

// NewListener creates an idle Listener.
func NewListener() *Listener {
	return &Listener{}
}

// Start always returns ErrUnsupported.
func (l *Listener) Start(toggle func()) error {
	return ErrUnsupported
}

// Stop does nothing.
func (l *Listener) Stop() {}

// HasAccessibility always reports true; there is no permission to grant.
func HasAccessibility() bool {
	return true
}
