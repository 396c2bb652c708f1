package config

import (
	"encoding/base64"
	"sync"

	"fyne.io/fyne/v2"
)

// Preference keys
const (
	VideoPathKey        = "video_path"
	AutostartKey        = "autostart"
	PlaybackModeKey     = "playback_mode"
	TintEnabledKey      = "tint_enabled"
	ThumbnailKey        = "thumbnail"
	BatteryLimitKey     = "battery_limit_enabled"
	BatteryThresholdKey = "battery_threshold"
	PauseOnFocusKey     = "pause_on_focus"
	UpdateCheckKey      = "app_update_check_enabled"
	AccentBroadcastKey  = "accent_broadcast_enabled"
	StillOnStopKey      = "still_on_stop"
)

// Battery threshold bounds, in percent.
const (
	DefaultBatteryThreshold = 20
	MinBatteryThreshold     = 5
	MaxBatteryThreshold     = 95
)

// PlaybackMode controls how the video is scaled onto the screen.
type PlaybackMode int

// PlaybackMode constants
const (
	PlaybackFill PlaybackMode = iota
	PlaybackFit
	PlaybackStretch
	PlaybackInvalid
)

// String returns the string representation of a PlaybackMode
func (m PlaybackMode) String() string {
	switch m {
	case PlaybackFill:
		return "Fill Screen"
	case PlaybackFit:
		return "Fit to Screen"
	case PlaybackStretch:
		return "Stretch"
	default:
		return "Unknown"
	}
}

// GetPlaybackModes returns all valid playback modes in display order.
func GetPlaybackModes() []PlaybackMode {
	return []PlaybackMode{PlaybackFill, PlaybackFit, PlaybackStretch}
}

// AppConfig holds the application-wide configuration backed by fyne preferences.
type AppConfig struct {
	prefs     fyne.Preferences
	mu        sync.RWMutex
	listeners map[string][]func()
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{
		prefs:     p,
		listeners: make(map[string][]func()),
	}
}

// OnChange registers fn to be called after the preference under key is set.
func (c *AppConfig) OnChange(key string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[key] = append(c.listeners[key], fn)
}

func (c *AppConfig) notify(key string) {
	c.mu.RLock()
	fns := append([]func(){}, c.listeners[key]...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// GetVideoPath returns the path of the selected wallpaper video, or "" if none.
func (c *AppConfig) GetVideoPath() string {
	return c.prefs.StringWithFallback(VideoPathKey, "")
}

// SetVideoPath sets the selected wallpaper video.
func (c *AppConfig) SetVideoPath(path string) {
	c.prefs.SetString(VideoPathKey, path)
	c.notify(VideoPathKey)
}

// GetAutostart returns whether the app is launched at login.
func (c *AppConfig) GetAutostart() bool {
	return c.prefs.BoolWithFallback(AutostartKey, false)
}

// SetAutostart sets whether the app is launched at login.
func (c *AppConfig) SetAutostart(enabled bool) {
	c.prefs.SetBool(AutostartKey, enabled)
	c.notify(AutostartKey)
}

// GetPlaybackMode returns the playback mode, falling back to Fill for unknown values.
func (c *AppConfig) GetPlaybackMode() PlaybackMode {
	m := PlaybackMode(c.prefs.IntWithFallback(PlaybackModeKey, int(PlaybackFill)))
	if m < PlaybackFill || m >= PlaybackInvalid {
		return PlaybackFill
	}
	return m
}

// SetPlaybackMode sets the playback mode.
func (c *AppConfig) SetPlaybackMode(m PlaybackMode) {
	c.prefs.SetInt(PlaybackModeKey, int(m))
	c.notify(PlaybackModeKey)
}

// GetTintEnabled returns whether the tray icon follows the video's accent color.
func (c *AppConfig) GetTintEnabled() bool {
	return c.prefs.BoolWithFallback(TintEnabledKey, true)
}

// SetTintEnabled sets whether the tray icon follows the video's accent color.
func (c *AppConfig) SetTintEnabled(enabled bool) {
	c.prefs.SetBool(TintEnabledKey, enabled)
	c.notify(TintEnabledKey)
}

// GetThumbnail returns the stored thumbnail PNG bytes, or nil.
func (c *AppConfig) GetThumbnail() []byte {
	s := c.prefs.StringWithFallback(ThumbnailKey, "")
	if s == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return data
}

// SetThumbnail stores the thumbnail PNG bytes. A nil slice clears it.
func (c *AppConfig) SetThumbnail(data []byte) {
	if len(data) == 0 {
		c.prefs.RemoveValue(ThumbnailKey)
	} else {
		c.prefs.SetString(ThumbnailKey, base64.StdEncoding.EncodeToString(data))
	}
	c.notify(ThumbnailKey)
}

// GetBatteryLimitEnabled returns whether playback stops on low battery.
func (c *AppConfig) GetBatteryLimitEnabled() bool {
	return c.prefs.BoolWithFallback(BatteryLimitKey, false)
}

// SetBatteryLimitEnabled sets whether playback stops on low battery.
func (c *AppConfig) SetBatteryLimitEnabled(enabled bool) {
	c.prefs.SetBool(BatteryLimitKey, enabled)
	c.notify(BatteryLimitKey)
}

// GetBatteryThreshold returns the battery percentage at or below which playback stops.
func (c *AppConfig) GetBatteryThreshold() int {
	return clampThreshold(c.prefs.IntWithFallback(BatteryThresholdKey, DefaultBatteryThreshold))
}

// SetBatteryThreshold sets the battery threshold, clamped to the supported range.
func (c *AppConfig) SetBatteryThreshold(percent int) {
	c.prefs.SetInt(BatteryThresholdKey, clampThreshold(percent))
	c.notify(BatteryThresholdKey)
}

func clampThreshold(p int) int {
	switch {
	case p < MinBatteryThreshold:
		return MinBatteryThreshold
	case p > MaxBatteryThreshold:
		return MaxBatteryThreshold
	default:
		return p
	}
}

// GetPauseOnFocus returns whether playback pauses while the app has focus.
func (c *AppConfig) GetPauseOnFocus() bool {
	return c.prefs.BoolWithFallback(PauseOnFocusKey, false)
}

// SetPauseOnFocus sets whether playback pauses while the app has focus.
func (c *AppConfig) SetPauseOnFocus(enabled bool) {
	c.prefs.SetBool(PauseOnFocusKey, enabled)
	c.notify(PauseOnFocusKey)
}

// GetUpdateCheckEnabled returns whether the application should check for updates
func (c *AppConfig) GetUpdateCheckEnabled() bool {
	return c.prefs.BoolWithFallback(UpdateCheckKey, true)
}

// SetUpdateCheckEnabled sets whether the application should check for updates
func (c *AppConfig) SetUpdateCheckEnabled(enabled bool) {
	c.prefs.SetBool(UpdateCheckKey, enabled)
	c.notify(UpdateCheckKey)
}

// GetAccentBroadcastEnabled returns whether the local status API is served.
func (c *AppConfig) GetAccentBroadcastEnabled() bool {
	return c.prefs.BoolWithFallback(AccentBroadcastKey, false)
}

// SetAccentBroadcastEnabled sets whether the local status API is served.
func (c *AppConfig) SetAccentBroadcastEnabled(enabled bool) {
	c.prefs.SetBool(AccentBroadcastKey, enabled)
	c.notify(AccentBroadcastKey)
}

// GetStillOnStop returns whether a still of the video becomes the desktop
// picture when playback stops.
func (c *AppConfig) GetStillOnStop() bool {
	return c.prefs.BoolWithFallback(StillOnStopKey, false)
}

// SetStillOnStop sets whether a still replaces the video when playback stops.
func (c *AppConfig) SetStillOnStop(enabled bool) {
	c.prefs.SetBool(StillOnStopKey, enabled)
	c.notify(StillOnStopKey)
}
