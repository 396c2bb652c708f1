package ui

import "time"

// startupSplashTime is how long the splash screen is shown at startup
const startupSplashTime = 3 * time.Second

// aboutSplashTime is how long the about screen is shown
const aboutSplashTime = 3 * time.Second

// updateMenuItemPrefix is the copy for the new update available tray menu item
const updateMenuItemPrefix = "Update to "

// Tray menu labels for the playback toggle.
const (
	playMenuLabel  = "Play Wallpaper"
	pauseMenuLabel = "Pause Wallpaper"
)

// selectTimeout bounds preparing a newly chosen video.
const selectTimeout = time.Minute

// shutdownTimeout bounds stopping the accent API on exit.
const shutdownTimeout = 2 * time.Second
