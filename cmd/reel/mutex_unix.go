//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dixieflatline76/Reel/config"
	"golang.org/x/sys/unix"
)

var lockFile *os.File

// acquireLock tries to take an exclusive flock on a lock file in the user's data
// directory. The file stays in place so two starts always lock the same inode.
func acquireLock() (bool, error) {
	dir := config.GetPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, config.AppName+".lock"), os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return false, nil // Another instance holds the lock
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	lockFile = file
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if lockFile == nil {
		return
	}
	_ = unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()
}
