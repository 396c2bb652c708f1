//go:build linux

package battery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type sysfsReader struct {
	root string
}

// NewReader returns the platform battery reader.
func NewReader() Reader {
	return sysfsReader{root: "/sys/class/power_supply"}
}

// Read looks for the first BAT* supply and reads its capacity and status.
func (r sysfsReader) Read(ctx context.Context) (Status, error) {
	matches, err := filepath.Glob(filepath.Join(r.root, "BAT*"))
	if err != nil || len(matches) == 0 {
		return Status{}, ErrNoBattery
	}
	dir := matches[0]

	capacity, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return Status{}, fmt.Errorf("reading battery capacity: %w", err)
	}
	status, err := os.ReadFile(filepath.Join(dir, "status"))
	if err != nil {
		return Status{}, fmt.Errorf("reading battery status: %w", err)
	}
	return parseSysfs(strings.TrimSpace(string(capacity)), strings.TrimSpace(string(status)))
}
