//go:build darwin

package hotkey

import "golang.design/x/hotkey"

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

int checkAccessibilityNative() {
    return AXIsProcessTrusted() ? 1 : 0;
}
*/
import "C"

// HasAccessibility reports whether the process is trusted for accessibility.
func HasAccessibility() bool {
	return C.checkAccessibilityNative() != 0
}

const (
	modCtrl = hotkey.ModCmd
	modAlt  = hotkey.ModOption
	keyUp   = hotkey.KeyUp
)
