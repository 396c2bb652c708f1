package log

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(log.Lshortfile)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestLogging(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(true)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{"Print", func() { Print("playing ", "waves.mp4") }, "playing waves.mp4"},
		{"Printf", func() { Printf("accent %s", "#ff8800") }, "accent #ff8800"},
		{"Println", func() { Println("stopped") }, "stopped"},
		{"Debug", func() { Debug("frame decoded") }, "[DEBUG] frame decoded"},
		{"Debugf", func() { Debugf("took %dms", 12) }, "[DEBUG] took 12ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			assert.Contains(t, buf.String(), tt.expected)
			assert.Contains(t, buf.String(), "log_test.go", "caller file is reported")
		})
	}
}

func TestDebugDisabled(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(false)
	t.Cleanup(func() { SetDebug(true) })

	Debug("hidden")
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	Print("shown")
	assert.Contains(t, buf.String(), "shown")
}
