package ui

import (
	"bytes"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/pkg/api"
	"github.com/dixieflatline76/Reel/pkg/frame"
	"github.com/dixieflatline76/Reel/pkg/ui/setting"
	"github.com/dixieflatline76/Reel/util/log"
)

// CreatePreferencesWindow shows the preferences window, focusing it if it is already open.
func (ra *ReelApp) CreatePreferencesWindow() {
	if ra.prefsWindow != nil {
		ra.prefsWindow.Show()
		ra.prefsWindow.RequestFocus()
		return
	}

	prefsWindow := ra.app.NewWindow(fmt.Sprintf("%s Preferences", config.AppName))
	prefsWindow.Resize(fyne.NewSize(640, 760))
	prefsWindow.CenterOnScreen()
	ra.prefsWindow = prefsWindow

	sm := NewSettingsManager(prefsWindow)
	videoPanel := ra.createVideoPanel(sm)
	settingsPanel := ra.createSettingsPanel(sm)

	prefsWindow.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, u := range uris {
			if u.Scheme() == "file" && frame.IsVideoFile(u.Path()) {
				ra.selectVideoAsync(u.Path())
				return
			}
		}
		dialog.ShowInformation("Unsupported File", "Drop a video file (mp4, mov, m4v, webm, mkv or avi).", prefsWindow)
	})

	closeButton := widget.NewButton("Close", func() {
		prefsWindow.Close()
	})
	footer := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(layout.NewSpacer(), sm.GetApplySettingsButton(), closeButton),
	)

	prefsWindow.SetContent(container.NewBorder(videoPanel, footer, nil, nil, container.NewVScroll(settingsPanel)))
	prefsWindow.SetOnClosed(func() {
		ra.prefsWindow = nil
		ra.prefsUpdate = nil
		ra.os.TransformToBackground()
	})

	ra.os.TransformToForeground()
	prefsWindow.Show()
}

// createVideoPanel shows the current video with its thumbnail and the chooser button.
func (ra *ReelApp) createVideoPanel(sm setting.SettingsManager) *fyne.Container {
	thumb := canvas.NewImageFromResource(nil)
	thumb.FillMode = canvas.ImageFillContain
	thumb.SetMinSize(fyne.NewSize(frame.ThumbnailWidth, frame.ThumbnailHeight))

	pathLabel := widget.NewLabel("")
	pathLabel.Wrapping = fyne.TextWrapBreak

	update := func() {
		path := ra.cfg.GetVideoPath()
		if path == "" {
			pathLabel.SetText("No video selected")
		} else {
			pathLabel.SetText(filepath.Base(path))
		}

		if res := thumbnailResource(ra.cfg.GetThumbnail()); res != nil {
			thumb.Image = nil
			thumb.Resource = res
		} else if splash, err := ra.assetMgr.Image("splash.png"); err == nil {
			thumb.Resource = nil
			thumb.Image = splash
		}
		thumb.Refresh()
	}
	update()
	ra.prefsUpdate = update

	chooseButton := widget.NewButton("Choose Video...", ra.showVideoPicker)

	panel := container.NewVBox()
	panel.Add(sm.CreateSectionTitleLabel("Wallpaper Video"))
	panel.Add(sm.CreateSettingDescriptionLabel("Choose a video file or drop one onto this window. It loops behind your desktop icons."))
	panel.Add(container.NewCenter(thumb))
	panel.Add(splitRowOpposed(pathLabel, chooseButton))
	panel.Add(widget.NewSeparator())
	return panel
}

// createSettingsPanel builds the playback, appearance, system, battery and integration settings.
func (ra *ReelApp) createSettingsPanel(sm setting.SettingsManager) *fyne.Container {
	header := container.NewVBox()

	header.Add(sm.CreateSectionTitleLabel("Playback"))
	sm.CreateSelectSetting(&setting.SelectConfig{
		Name:         config.PlaybackModeKey,
		Options:      setting.StringOptions(config.GetPlaybackModes()),
		InitialValue: int(ra.cfg.GetPlaybackMode()),
		Label:        sm.CreateSettingTitleLabel("Playback Mode:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Fill crops the video to cover the screen, Fit letterboxes it and Stretch ignores the aspect ratio."),
		ApplyFunc: func(i int) {
			ra.cfg.SetPlaybackMode(config.PlaybackMode(i))
		},
	}, header)
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.PauseOnFocusKey,
		InitialValue: ra.cfg.GetPauseOnFocus(),
		Label:        sm.CreateSettingTitleLabel("Pause When Focused:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Pause the wallpaper while a " + config.AppName + " window is active."),
		ApplyFunc:    ra.cfg.SetPauseOnFocus,
	}, header)

	header.Add(widget.NewSeparator())
	header.Add(sm.CreateSectionTitleLabel("Appearance"))
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.TintEnabledKey,
		InitialValue: ra.cfg.GetTintEnabled(),
		Label:        sm.CreateSettingTitleLabel("Adaptive Menu Bar Tint:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Tint the menu bar icon with the dominant color of the video."),
		ApplyFunc:    ra.cfg.SetTintEnabled,
	}, header)

	header.Add(widget.NewSeparator())
	header.Add(sm.CreateSectionTitleLabel("System"))
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.AutostartKey,
		InitialValue: ra.cfg.GetAutostart(),
		Label:        sm.CreateSettingTitleLabel("Launch at Login:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Start " + config.AppName + " automatically when you log in."),
		ApplyFunc:    ra.cfg.SetAutostart,
	}, header)
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.UpdateCheckKey,
		InitialValue: ra.cfg.GetUpdateCheckEnabled(),
		Label:        sm.CreateSettingTitleLabel("Check for Updates:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Look for a newer release on startup."),
		ApplyFunc:    ra.cfg.SetUpdateCheckEnabled,
	}, header)

	header.Add(widget.NewSeparator())
	header.Add(sm.CreateSectionTitleLabel("Battery"))
	var thresholdSlider *widget.Slider
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.BatteryLimitKey,
		InitialValue: ra.cfg.GetBatteryLimitEnabled(),
		Label:        sm.CreateSettingTitleLabel("Stop on Low Battery:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Stop the wallpaper when running on battery below the threshold and resume once charging."),
		OnChanged: func(b bool) {
			if b {
				thresholdSlider.Enable()
			} else {
				thresholdSlider.Disable()
			}
		},
		ApplyFunc: ra.cfg.SetBatteryLimitEnabled,
	}, header)
	thresholdSlider = sm.CreateSliderSetting(&setting.SliderConfig{
		Name:         config.BatteryThresholdKey,
		Min:          config.MinBatteryThreshold,
		Max:          config.MaxBatteryThreshold,
		Step:         5,
		InitialValue: ra.cfg.GetBatteryThreshold(),
		Format:       func(v int) string { return fmt.Sprintf("%d%%", v) },
		Label:        sm.CreateSettingTitleLabel("Battery Threshold:"),
		ApplyFunc:    ra.cfg.SetBatteryThreshold,
	}, header)
	if !ra.cfg.GetBatteryLimitEnabled() {
		thresholdSlider.Disable()
	}
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.StillOnStopKey,
		InitialValue: ra.cfg.GetStillOnStop(),
		Label:        sm.CreateSettingTitleLabel("Leave a Still Behind:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Set the first frame as the desktop picture when playback stops for low battery or on quit."),
		ApplyFunc:    ra.cfg.SetStillOnStop,
	}, header)

	header.Add(widget.NewSeparator())
	header.Add(sm.CreateSectionTitleLabel("Integrations"))
	sm.CreateBoolSetting(&setting.BoolConfig{
		Name:         config.AccentBroadcastKey,
		InitialValue: ra.cfg.GetAccentBroadcastEnabled(),
		Label:        sm.CreateSettingTitleLabel("Broadcast Accent Color:"),
		HelpContent:  sm.CreateSettingDescriptionLabel("Serve the accent color and playback state on http://" + api.DefaultAddr + " for other local tools."),
		ApplyFunc:    ra.cfg.SetAccentBroadcastEnabled,
	}, header)
	sm.CreateButtonWithConfirmationSetting(&setting.ButtonWithConfirmationConfig{
		Name:           "clear_video",
		Label:          sm.CreateSettingTitleLabel("Forget Video:"),
		ButtonText:     "Clear",
		ConfirmTitle:   "Please Confirm",
		ConfirmMessage: "Stop the wallpaper and forget the selected video?",
		OnPressed:      ra.clearVideo,
	}, header)

	return header
}

// showVideoPicker opens a file dialog limited to video files.
func (ra *ReelApp) showVideoPicker() {
	if ra.prefsWindow == nil {
		return
	}
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ra.prefsWindow)
			return
		}
		if rc == nil {
			return // cancelled
		}
		path := rc.URI().Path()
		if err := rc.Close(); err != nil {
			log.Printf("Failed to close %s: %v", path, err)
		}
		ra.selectVideoAsync(path)
	}, ra.prefsWindow)
	fd.SetFilter(storage.NewExtensionFileFilter(frame.VideoExtensions()))

	if current := ra.cfg.GetVideoPath(); current != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(current))); err == nil {
			fd.SetLocation(dir)
		}
	}
	fd.Resize(fyne.NewSize(800, 600))
	fd.Show()
}

// clearVideo stops playback and forgets the selected video.
func (ra *ReelApp) clearVideo() {
	ra.player.Unload()
	ra.cfg.SetVideoPath("")
	ra.cfg.SetThumbnail(nil)
	ra.updatePrefsWindow()
}

// updatePrefsWindow refreshes the video panel of the open preferences window.
func (ra *ReelApp) updatePrefsWindow() {
	fyne.Do(func() {
		if ra.prefsUpdate != nil {
			ra.prefsUpdate()
		}
	})
}

// thumbnailResource wraps stored thumbnail bytes for display, or returns nil if they are not a PNG.
func thumbnailResource(data []byte) fyne.Resource {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		return nil
	}
	return fyne.NewStaticResource("thumbnail.png", data)
}
