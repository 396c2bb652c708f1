package config

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

// newPrefs returns the in-memory preferences of a fresh test app.
func newPrefs(t *testing.T) fyne.Preferences {
	t.Helper()
	return test.NewTempApp(t).Preferences()
}

func TestAppConfigDefaults(t *testing.T) {
	cfg := NewAppConfig(newPrefs(t))

	assert.Equal(t, "", cfg.GetVideoPath())
	assert.False(t, cfg.GetAutostart())
	assert.Equal(t, PlaybackFill, cfg.GetPlaybackMode())
	assert.True(t, cfg.GetTintEnabled())
	assert.Nil(t, cfg.GetThumbnail())
	assert.False(t, cfg.GetBatteryLimitEnabled())
	assert.Equal(t, DefaultBatteryThreshold, cfg.GetBatteryThreshold())
	assert.False(t, cfg.GetPauseOnFocus())
	assert.True(t, cfg.GetUpdateCheckEnabled())
	assert.False(t, cfg.GetAccentBroadcastEnabled())
	assert.False(t, cfg.GetStillOnStop())
}

func TestAppConfig(t *testing.T) {
	prefs := newPrefs(t)
	cfg := NewAppConfig(prefs)

	t.Run("VideoPath", func(t *testing.T) {
		cfg.SetVideoPath("/Users/me/Movies/waves.mp4")
		assert.Equal(t, "/Users/me/Movies/waves.mp4", cfg.GetVideoPath())
	})

	t.Run("Autostart", func(t *testing.T) {
		cfg.SetAutostart(true)
		assert.True(t, cfg.GetAutostart())
		cfg.SetAutostart(false)
		assert.False(t, cfg.GetAutostart())
	})

	t.Run("PlaybackMode", func(t *testing.T) {
		cfg.SetPlaybackMode(PlaybackStretch)
		assert.Equal(t, PlaybackStretch, cfg.GetPlaybackMode())

		// Out of range values fall back to Fill
		prefs.SetInt(PlaybackModeKey, 42)
		assert.Equal(t, PlaybackFill, cfg.GetPlaybackMode())
		prefs.SetInt(PlaybackModeKey, -1)
		assert.Equal(t, PlaybackFill, cfg.GetPlaybackMode())
	})

	t.Run("Thumbnail", func(t *testing.T) {
		data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
		cfg.SetThumbnail(data)
		assert.Equal(t, data, cfg.GetThumbnail())

		cfg.SetThumbnail(nil)
		assert.Nil(t, cfg.GetThumbnail())

		prefs.SetString(ThumbnailKey, "%%% not base64")
		assert.Nil(t, cfg.GetThumbnail())
	})

	t.Run("BatteryThreshold", func(t *testing.T) {
		tests := []struct {
			in   int
			want int
		}{
			{in: 30, want: 30},
			{in: 0, want: MinBatteryThreshold},
			{in: -10, want: MinBatteryThreshold},
			{in: 100, want: MaxBatteryThreshold},
			{in: MaxBatteryThreshold, want: MaxBatteryThreshold},
		}
		for _, tt := range tests {
			cfg.SetBatteryThreshold(tt.in)
			assert.Equal(t, tt.want, cfg.GetBatteryThreshold(), "input %d", tt.in)
		}

		// Values written around the setter are clamped on read
		prefs.SetInt(BatteryThresholdKey, 1)
		assert.Equal(t, MinBatteryThreshold, cfg.GetBatteryThreshold())
	})

	t.Run("Toggles", func(t *testing.T) {
		cfg.SetTintEnabled(false)
		assert.False(t, cfg.GetTintEnabled())
		cfg.SetBatteryLimitEnabled(true)
		assert.True(t, cfg.GetBatteryLimitEnabled())
		cfg.SetPauseOnFocus(true)
		assert.True(t, cfg.GetPauseOnFocus())
		cfg.SetUpdateCheckEnabled(false)
		assert.False(t, cfg.GetUpdateCheckEnabled())
		cfg.SetAccentBroadcastEnabled(true)
		assert.True(t, cfg.GetAccentBroadcastEnabled())
		cfg.SetStillOnStop(true)
		assert.True(t, cfg.GetStillOnStop())
	})
}

func TestAppConfigOnChange(t *testing.T) {
	cfg := NewAppConfig(newPrefs(t))

	calls := 0
	cfg.OnChange(VideoPathKey, func() { calls++ })
	cfg.OnChange(VideoPathKey, func() { calls += 10 })

	cfg.SetVideoPath("/tmp/a.mov")
	assert.Equal(t, 11, calls)

	cfg.SetTintEnabled(false) // different key, no callback
	assert.Equal(t, 11, calls)
}

func TestPlaybackModeString(t *testing.T) {
	assert.Equal(t, "Fill Screen", PlaybackFill.String())
	assert.Equal(t, "Fit to Screen", PlaybackFit.String())
	assert.Equal(t, "Stretch", PlaybackStretch.String())
	assert.Equal(t, "Unknown", PlaybackInvalid.String())
	assert.Len(t, GetPlaybackModes(), 3)
}
