package main

import (
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/ui"
	"github.com/dixieflatline76/Reel/util/log"
)

func main() {
	// Only one instance may drive the wallpaper renderer.
	acquired, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to acquire single instance lock: %v", err)
	}
	if !acquired {
		log.Printf("Another instance of %s is already running.", config.AppName)
		return
	}
	defer releaseLock()

	log.Printf("Starting %s %s", config.AppName, config.AppVersion)
	reel := ui.GetInstance()
	if reel == nil {
		log.Fatalf("%s needs a desktop with a system tray.", config.AppName)
	}
	reel.Run()
}
