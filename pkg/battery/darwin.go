//go:build darwin

package battery

import (
	"context"
	"fmt"
	"os/exec"
)

type pmsetReader struct{}

// NewReader returns the platform battery reader.
func NewReader() Reader {
	return pmsetReader{}
}

// Read runs `pmset -g batt` and parses its output.
func (pmsetReader) Read(ctx context.Context) (Status, error) {
	out, err := exec.CommandContext(ctx, "pmset", "-g", "batt").Output()
	if err != nil {
		return Status{}, fmt.Errorf("failed to run pmset: %w", err)
	}
	return parsePmset(string(out))
}
