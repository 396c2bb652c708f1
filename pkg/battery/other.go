//go:build !darwin && !linux

package battery

import "context"

type noReader struct{}

// NewReader returns the platform battery reader.
func NewReader() Reader {
	return noReader{}
}

// Read always reports ErrNoBattery.
func (noReader) Read(ctx context.Context) (Status, error) {
	return Status{}, ErrNoBattery
}
