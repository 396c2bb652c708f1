//go:build windows

package hotkey

import "golang.design/x/hotkey"

const (
	modCtrl = hotkey.ModCtrl
	modAlt  = hotkey.ModAlt
	keyUp   = hotkey.KeyUp
)

// HasAccessibility always reports true on Windows.
func HasAccessibility() bool {
	return true
}
