package autostart

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, goos string) *Manager {
	t.Helper()
	return &Manager{
		Name: "Reel",
		ID:   "com.example.reel",
		Exec: "/Applications/Reel.app/Contents/MacOS/reel",
		Home: t.TempDir(),
		GOOS: goos,
	}
}

func TestDarwinLaunchAgent(t *testing.T) {
	m := newTestManager(t, "darwin")
	assert.False(t, m.IsEnabled())

	require.NoError(t, m.Enable())
	assert.True(t, m.IsEnabled())

	path, err := m.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Home, "Library", "LaunchAgents", "com.example.reel.plist"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "<string>com.example.reel</string>")
	assert.Contains(t, content, "<string>/Applications/Reel.app/Contents/MacOS/reel</string>")
	assert.Contains(t, content, "<key>RunAtLoad</key>")

	require.NoError(t, m.Disable())
	assert.False(t, m.IsEnabled())

	// Disabling twice is fine
	require.NoError(t, m.Disable())
}

func TestLinuxDesktopEntry(t *testing.T) {
	m := newTestManager(t, "linux")
	m.Exec = "/usr/local/bin/reel"

	require.NoError(t, m.Apply(true))
	path, err := m.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Home, ".config", "autostart", "com.example.reel.desktop"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/usr/local/bin/reel"`)
	assert.Contains(t, string(data), "Name=Reel")

	require.NoError(t, m.Apply(false))
	assert.False(t, m.IsEnabled())
}

func TestLoginItemEscapesExecutablePath(t *testing.T) {
	t.Run("LaunchAgent", func(t *testing.T) {
		m := newTestManager(t, "darwin")
		m.Exec = "/Applications/A & B <Beta>.app/Contents/MacOS/reel"
		require.NoError(t, m.Enable())

		path, err := m.Path()
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<string>/Applications/A &amp; B &lt;Beta&gt;.app/Contents/MacOS/reel</string>")

		var plist struct {
			Strings []string `xml:"dict>array>string"`
		}
		require.NoError(t, xml.Unmarshal(data, &plist))
		assert.Equal(t, []string{m.Exec}, plist.Strings)
	})

	t.Run("Desktop entry", func(t *testing.T) {
		m := newTestManager(t, "linux")
		m.Exec = `/opt/my "reel"/$bin/reel`
		require.NoError(t, m.Enable())

		path, err := m.Path()
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `Exec="/opt/my \"reel\"/\$bin/reel"`)
	})
}

func TestUnsupportedPlatform(t *testing.T) {
	m := newTestManager(t, "plan9")
	assert.ErrorIs(t, m.Enable(), ErrUnsupported)
	assert.ErrorIs(t, m.Disable(), ErrUnsupported)
	assert.False(t, m.IsEnabled())
}
