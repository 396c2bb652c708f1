//go:build !darwin && !windows

package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartUnsupported(t *testing.T) {
	l := NewListener()
	called := false
	assert.ErrorIs(t, l.Start(func() { called = true }), ErrUnsupported)
	assert.False(t, called)
	assert.True(t, HasAccessibility())
	assert.NotPanics(t, l.Stop)
}
