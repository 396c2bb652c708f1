package config

import (
	"os"
	"path/filepath"
	"strings"

	"log"
)

// AppVersion is the version of the application.
var AppVersion string // Set with -ldflags "-X github.com/dixieflatline76/Reel/config.AppVersion=..."

// AppName is the name of the application.
const AppName = "Reel"

// AppID is the reverse-DNS identifier used for preferences and login items.
const AppID = "com.dixieflatline76.reel"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// GetPath returns the path to the user's data directory
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, LogSubDir)
}
