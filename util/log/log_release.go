//go:build release

package log

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/Reel/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// debugEnv turns on debug output in a release build.
const debugEnv = "REEL_DEBUG"

func init() {
	logDir, err := logDirectory()
	if err != nil {
		log.Fatalf("Failed to resolve log directory: %v", err)
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, config.AppName+config.LogExt),
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	})
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	SetDebug(os.Getenv(debugEnv) == "1")
}

// logDirectory is %LocalAppData%\Reel on Windows and ~/.reel elsewhere.
func logDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, config.LogWinSubDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, config.LogSubDir), nil
}
