//go:build linux

package ui

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct{}

// TransformToForeground is a no-op, Linux desktops have no Dock policy.
func (l *linuxOS) TransformToForeground() {}

// TransformToBackground is a no-op, Linux desktops have no Dock policy.
func (l *linuxOS) TransformToBackground() {}

// SetupLifecycle is a no-op for standard Linux desktops.
func (l *linuxOS) SetupLifecycle(app fyne.App, ra *ReelApp) {}

// chromeOS implements the OS interface for Chrome OS (Crostini), which has no
// system tray. Clicking the shelf icon opens a small window with the tray menu.
type chromeOS struct {
	linuxOS
	trayWindow fyne.Window
}

func (c *chromeOS) SetupLifecycle(app fyne.App, ra *ReelApp) {
	app.Lifecycle().SetOnEnteredForeground(func() {
		if c.trayWindow == nil {
			c.trayWindow = createTrayWindow(app, ra.trayMenu)
		}
		c.trayWindow.Show()
		c.trayWindow.RequestFocus()
		ra.onEnteredForeground()
	})
}

// createTrayWindow renders the items of menu as buttons in an undecorated window.
func createTrayWindow(app fyne.App, menu *fyne.Menu) fyne.Window {
	w := app.NewWindow("Reel")
	w.SetUndecorated(true)

	var items []fyne.CanvasObject
	if menu != nil {
		for _, item := range menu.Items {
			if item.IsSeparator {
				items = append(items, widget.NewSeparator())
				continue
			}
			menuItem := item
			btn := widget.NewButtonWithIcon(menuItem.Label, menuItem.Icon, func() {
				if menuItem.Action != nil {
					menuItem.Action()
				}
				w.Hide()
			})
			items = append(items, btn)
		}
	}

	w.SetContent(container.NewPadded(container.NewVBox(items...)))
	w.CenterOnScreen()
	return w
}

// getOS returns a new instance of the OS struct.
func getOS() OS {
	// Chrome OS marks its Linux container with this file.
	if _, err := os.Stat("/dev/.cros_milestone"); err == nil {
		return &chromeOS{}
	}
	return &linuxOS{}
}
