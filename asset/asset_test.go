package asset

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	m := NewManager()

	img, err := m.Image("splash.png")
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())

	for _, name := range []string{"tray.png", "play.png", "pause.png", "video.png", "prefs.png", "quit.png"} {
		t.Run(name, func(t *testing.T) {
			icon, err := m.Icon(name)
			require.NoError(t, err)
			assert.Equal(t, name, icon.Name())
			assert.Equal(t, []byte("\x89PNG"), icon.Content()[:4])
		})
	}

	text, err := m.Text("eula.txt")
	require.NoError(t, err)
	assert.Contains(t, text, "Reel")
}

func TestManagerErrors(t *testing.T) {
	m := newManager(fstest.MapFS{
		"icons/broken.png": {Data: []byte("not a png")},
	})

	_, err := m.Icon("")
	assert.Error(t, err)
	_, err = m.Icon("missing.png")
	assert.Error(t, err)
	_, err = m.Image("missing.png")
	assert.Error(t, err)
	_, err = m.Text("missing.txt")
	assert.Error(t, err)

	_, err = m.Glyph("broken.png")
	assert.Error(t, err)
}

func TestIconCaching(t *testing.T) {
	m := NewManager()
	a, err := m.Icon("tray.png")
	require.NoError(t, err)
	b, err := m.Icon("tray.png")
	require.NoError(t, err)
	assert.Same(t, a, b)

	g1, err := m.Glyph("tray.png")
	require.NoError(t, err)
	g2, err := m.Glyph("tray.png")
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
}
