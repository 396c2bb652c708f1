//go:build darwin

package ui

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework AppKit

#import <AppKit/AppKit.h>

// showInDock switches between a regular app with a Dock icon and an accessory
// app that lives only in the menu bar. Activation is needed for a regular app
// to come forward.
void showInDock(int show) {
    if (show) {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];
        [NSApp activateIgnoringOtherApps:YES];
    } else {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    }
}
*/
import "C"

import (
	"sync"

	"fyne.io/fyne/v2"
)

// darwinOS keeps a Dock icon while at least one window is open.
type darwinOS struct {
	mu      sync.Mutex
	windows int
}

func (d *darwinOS) TransformToForeground() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows++
	if d.windows == 1 {
		C.showInDock(1)
	}
}

func (d *darwinOS) TransformToBackground() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.windows > 0 {
		d.windows--
	}
	if d.windows == 0 {
		C.showInDock(0)
	}
}

// SetupLifecycle starts the app as a menu bar only app.
func (d *darwinOS) SetupLifecycle(app fyne.App, ra *ReelApp) {
	app.Lifecycle().SetOnStarted(func() {
		C.showInDock(0)
		ra.start()
	})
}

func getOS() OS {
	return &darwinOS{}
}
