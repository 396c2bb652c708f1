package util

import "sync/atomic"

// SafeFlag is a boolean that is safe to use concurrently.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeBool creates a new SafeFlag set to false.
func NewSafeBool() *SafeFlag {
	return &SafeFlag{}
}

// Set sets the value of the flag.
func (sf *SafeFlag) Set(v bool) {
	sf.value.Store(v)
}

// Value returns the current value of the flag.
func (sf *SafeFlag) Value() bool {
	return sf.value.Load()
}

// Swap sets the flag to v and returns the previous value.
func (sf *SafeFlag) Swap(v bool) bool {
	return sf.value.Swap(v)
}
