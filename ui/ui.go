package ui

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/dixieflatline76/Reel/asset"
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/pkg/accent"
	"github.com/dixieflatline76/Reel/pkg/api"
	"github.com/dixieflatline76/Reel/pkg/autostart"
	"github.com/dixieflatline76/Reel/pkg/battery"
	"github.com/dixieflatline76/Reel/pkg/frame"
	"github.com/dixieflatline76/Reel/pkg/hotkey"
	"github.com/dixieflatline76/Reel/pkg/player"
	"github.com/dixieflatline76/Reel/pkg/still"
	"github.com/dixieflatline76/Reel/util"
	"github.com/dixieflatline76/Reel/util/log"
)

// OS hides the platform specific parts of the tray application.
type OS interface {
	TransformToForeground() // Show a Dock icon while a window is open
	TransformToBackground() // Go back to being a menu bar only app
	SetupLifecycle(app fyne.App, ra *ReelApp)
}

// Poster sets a still of a video as the desktop picture.
type Poster interface {
	Apply(ctx context.Context, videoPath string) (string, error)
}

// Deps are the collaborators of ReelApp. Zero fields use the real implementations.
type Deps struct {
	Renderer  player.Renderer
	Frames    player.FrameSource
	Battery   battery.Reader
	Autostart *autostart.Manager
	Poster    Poster
	OS        OS
}

// ReelApp represents the application
type ReelApp struct {
	app       fyne.App
	assetMgr  *asset.Manager
	cfg       *config.AppConfig
	player    *player.Player
	battery   *battery.Monitor
	autostart *autostart.Manager
	hotkeys   *hotkey.Listener
	api       *api.Server
	poster    Poster
	os        OS

	trayMenu    *fyne.Menu
	playItem    *fyne.MenuItem
	prefsWindow fyne.Window
	prefsUpdate func() // refreshes the open preferences window, nil when closed

	focusPaused    *util.SafeFlag
	batteryStopped *util.SafeFlag
	apiRunning     *util.SafeFlag

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

var (
	instance *ReelApp  // Singleton instance of the application
	once     sync.Once // Ensures the singleton is created only once
)

// GetInstance returns the singleton instance of the application
func GetInstance() *ReelApp {
	once.Do(func() {
		a := app.NewWithID(config.AppID)
		if _, ok := a.(desktop.App); !ok {
			log.Println("Tray icon not supported on this platform")
			return
		}
		am, err := autostart.NewManager(config.AppName, config.AppID)
		if err != nil {
			log.Printf("Autostart unavailable: %v", err)
		}
		instance = NewReelApp(a, Deps{Autostart: am})
	})
	return instance
}

// NewReelApp wires the application around a.
func NewReelApp(a fyne.App, d Deps) *ReelApp {
	if d.Renderer == nil {
		d.Renderer = player.NewMPVRenderer()
	}
	if d.Frames == nil {
		d.Frames = frame.NewExtractor()
	}
	if d.Battery == nil {
		d.Battery = battery.NewReader()
	}
	if d.Poster == nil {
		d.Poster = still.NewPoster(d.Frames, filepath.Join(config.GetPath(), "stills"))
	}
	if d.OS == nil {
		d.OS = getOS()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ra := &ReelApp{
		app:            a,
		assetMgr:       asset.NewManager(),
		cfg:            config.NewAppConfig(a.Preferences()),
		player:         player.New(d.Renderer, d.Frames),
		autostart:      d.Autostart,
		hotkeys:        hotkey.NewListener(),
		poster:         d.Poster,
		os:             d.OS,
		focusPaused:    util.NewSafeBool(),
		batteryStopped: util.NewSafeBool(),
		apiRunning:     util.NewSafeBool(),
		ctx:            ctx,
		cancel:         cancel,
	}
	ra.api = api.NewServer(ra)
	ra.battery = battery.NewMonitor(d.Battery, ra.cfg, ra.onBatteryLow, ra.onBatteryRecovered)
	ra.wire()
	return ra
}

// wire connects preference changes and player events to their effects.
func (ra *ReelApp) wire() {
	if err := ra.player.SetMode(ra.cfg.GetPlaybackMode()); err != nil {
		log.Printf("Failed to set playback mode: %v", err)
	}

	ra.player.OnAccent(func(c accent.Color) {
		log.Debugf("Accent color is now %s", c.Hex())
		fyne.Do(ra.refreshTrayIcon)
		ra.api.BroadcastAccent(c.Hex())
	})
	ra.player.OnStateChange(func(s player.State) {
		fyne.Do(ra.refreshPlayItem)
		ra.api.BroadcastState(s.String())
	})

	ra.cfg.OnChange(config.TintEnabledKey, ra.refreshTrayIcon)
	ra.cfg.OnChange(config.AutostartKey, ra.applyAutostart)
	ra.cfg.OnChange(config.AccentBroadcastKey, ra.applyAccentBroadcast)
	ra.cfg.OnChange(config.PlaybackModeKey, func() {
		if err := ra.player.SetMode(ra.cfg.GetPlaybackMode()); err != nil {
			ra.showError(err)
		}
	})
	ra.cfg.OnChange(config.BatteryLimitKey, ra.checkBattery)
	ra.cfg.OnChange(config.BatteryThresholdKey, ra.checkBattery)
}

// Config returns the typed preferences of the application.
func (ra *ReelApp) Config() *config.AppConfig {
	return ra.cfg
}

// Player returns the wallpaper player.
func (ra *ReelApp) Player() *player.Player {
	return ra.player
}

// CreateTrayMenu creates the tray menu for the application
func (ra *ReelApp) CreateTrayMenu() {
	ra.playItem = ra.createMenuItem(playMenuLabel, func() {
		go ra.TogglePlayback()
	}, "play.png")

	ra.trayMenu = fyne.NewMenu(
		config.AppName,
		ra.playItem,
		ra.createMenuItem("Choose Video...", func() {
			ra.CreatePreferencesWindow()
			ra.showVideoPicker()
		}, "video.png"),
		fyne.NewMenuItemSeparator(),
		ra.createMenuItem("Preferences", func() {
			ra.CreatePreferencesWindow()
		}, "prefs.png"),
		ra.createMenuItem("About "+config.AppName, func() {
			ra.CreateSplashScreen(aboutSplashTime)
		}, "tray.png"),
		fyne.NewMenuItemSeparator(),
		ra.createMenuItem("Quit", func() {
			ra.app.Quit()
		}, "quit.png"),
	)

	if desk, ok := ra.app.(desktop.App); ok {
		desk.SetSystemTrayMenu(ra.trayMenu)
	}
	if icon, err := ra.assetMgr.Icon("tray.png"); err == nil {
		ra.app.SetIcon(icon)
	}
	ra.refreshTrayIcon()
}

func (ra *ReelApp) createMenuItem(label string, action func(), iconName string) *fyne.MenuItem {
	mi := fyne.NewMenuItem(label, action)
	icon, err := ra.assetMgr.Icon(iconName)
	if err != nil {
		log.Printf("Failed to load icon: %v", err)
		return mi
	}
	mi.Icon = icon
	return mi
}

// refreshTrayMenu redraws the tray menu after an item changed.
func (ra *ReelApp) refreshTrayMenu() {
	if ra.trayMenu == nil {
		return
	}
	ra.trayMenu.Refresh()
	if desk, ok := ra.app.(desktop.App); ok {
		desk.SetSystemTrayMenu(ra.trayMenu)
	}
}

// refreshPlayItem flips the playback menu item between Play and Pause.
func (ra *ReelApp) refreshPlayItem() {
	if ra.playItem == nil {
		return
	}
	label, iconName := playMenuLabel, "play.png"
	if ra.player.State() == player.StatePlaying {
		label, iconName = pauseMenuLabel, "pause.png"
	}
	if ra.playItem.Label == label {
		return
	}
	ra.playItem.Label = label
	if icon, err := ra.assetMgr.Icon(iconName); err == nil {
		ra.playItem.Icon = icon
	}
	ra.refreshTrayMenu()
}

// trayIcon renders the tray glyph, tinted with the accent color when tinting is
// enabled and the current video produced a real accent.
func (ra *ReelApp) trayIcon() (fyne.Resource, error) {
	c := ra.player.Accent()
	if !ra.cfg.GetTintEnabled() || c.IsFallback() {
		return ra.assetMgr.Icon("tray.png")
	}

	glyph, err := ra.assetMgr.Glyph("tray.png")
	if err != nil {
		return nil, err
	}
	data, err := encodePNG(tintIcon(glyph, c.NRGBA(), trayIconSize))
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource("tray-"+c.Hex()[1:]+".png", data), nil
}

func (ra *ReelApp) refreshTrayIcon() {
	desk, ok := ra.app.(desktop.App)
	if !ok {
		return
	}
	icon, err := ra.trayIcon()
	if err != nil {
		log.Printf("Failed to render tray icon: %v", err)
		return
	}
	desk.SetSystemTrayIcon(icon)
}

// SelectVideo validates path, prepares its accent color and thumbnail, stores it
// as the wallpaper video and starts playing it.
func (ra *ReelApp) SelectVideo(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, selectTimeout)
	defer cancel()

	sel, err := ra.player.Select(ctx, path)
	if err != nil {
		return err
	}
	ra.cfg.SetVideoPath(sel.Path)
	ra.cfg.SetThumbnail(sel.Thumbnail)
	ra.updatePrefsWindow()

	if ra.battery.IsLow() {
		log.Print("Battery is low, not starting playback.")
		ra.batteryStopped.Set(true)
		return nil
	}
	return ra.player.Play(sel.Path)
}

// selectVideoAsync runs SelectVideo in the background and reports failures in a dialog.
func (ra *ReelApp) selectVideoAsync(path string) {
	go func() {
		if err := ra.SelectVideo(ra.ctx, path); err != nil {
			log.Printf("Failed to select video %s: %v", path, err)
			ra.showError(err)
		}
	}()
}

// TogglePlayback pauses or resumes the wallpaper, starting the saved video if nothing is loaded.
func (ra *ReelApp) TogglePlayback() {
	var err error
	if ra.player.Current() == "" {
		err = ra.resumeLastVideo()
	} else {
		err = ra.player.Toggle()
	}
	// A manual toggle overrides any automatic pause.
	ra.focusPaused.Set(false)

	if errors.Is(err, player.ErrNoVideo) {
		fyne.Do(ra.CreatePreferencesWindow)
		return
	}
	if err != nil {
		log.Printf("Failed to toggle playback: %v", err)
		ra.showError(err)
	}
}

// resumeLastVideo prepares and plays the saved video.
func (ra *ReelApp) resumeLastVideo() error {
	path := ra.cfg.GetVideoPath()
	if path == "" {
		return player.ErrNoVideo
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Saved video is unavailable: %v", err)
		return err
	}
	return ra.SelectVideo(ra.ctx, path)
}

// onBatteryLow stops playback while the battery is below the threshold.
func (ra *ReelApp) onBatteryLow(st battery.Status) {
	if ra.player.State() == player.StateStopped {
		return
	}
	log.Printf("Battery at %d%%, stopping wallpaper playback.", st.Percent)
	ra.batteryStopped.Set(true)
	ra.player.Stop()
	ra.applyStill(ra.ctx)
	ra.app.SendNotification(fyne.NewNotification(config.AppName,
		"Wallpaper playback stopped to save battery."))
}

// applyStill leaves a still of the current video on the desktop when enabled.
func (ra *ReelApp) applyStill(ctx context.Context) {
	path := ra.cfg.GetVideoPath()
	if !ra.cfg.GetStillOnStop() || path == "" {
		return
	}
	if _, err := ra.poster.Apply(ctx, path); err != nil {
		log.Printf("Failed to set desktop still: %v", err)
	}
}

// onBatteryRecovered resumes playback stopped by onBatteryLow.
func (ra *ReelApp) onBatteryRecovered(st battery.Status) {
	if !ra.batteryStopped.Swap(false) {
		return
	}
	path := ra.cfg.GetVideoPath()
	if path == "" {
		return
	}
	log.Printf("Battery recovered (%d%%), resuming wallpaper playback.", st.Percent)
	if err := ra.player.Play(path); err != nil {
		log.Printf("Failed to resume playback: %v", err)
	}
}

func (ra *ReelApp) checkBattery() {
	go ra.battery.Check(ra.ctx)
}

// onEnteredForeground pauses a playing wallpaper while the app has focus.
func (ra *ReelApp) onEnteredForeground() {
	if !ra.cfg.GetPauseOnFocus() || ra.player.State() != player.StatePlaying {
		return
	}
	if err := ra.player.Pause(); err != nil {
		log.Printf("Failed to pause on focus: %v", err)
		return
	}
	ra.focusPaused.Set(true)
}

// onExitedForeground resumes a wallpaper paused by onEnteredForeground.
func (ra *ReelApp) onExitedForeground() {
	if !ra.focusPaused.Swap(false) {
		return
	}
	if err := ra.player.Resume(); err != nil {
		log.Printf("Failed to resume after focus: %v", err)
	}
}

func (ra *ReelApp) applyAutostart() {
	if ra.autostart == nil {
		return
	}
	if err := ra.autostart.Apply(ra.cfg.GetAutostart()); err != nil {
		log.Printf("Failed to update login item: %v", err)
		ra.showError(err)
	}
}

// applyAccentBroadcast starts or stops the local accent API to match the preference.
func (ra *ReelApp) applyAccentBroadcast() {
	enabled := ra.cfg.GetAccentBroadcastEnabled()
	if ra.apiRunning.Swap(enabled) == enabled {
		return
	}
	if !enabled {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ra.api.Stop(ctx); err != nil {
			log.Printf("Failed to stop accent API: %v", err)
		}
		return
	}
	if err := ra.api.Listen(); err != nil {
		log.Printf("Failed to start accent API: %v", err)
		ra.apiRunning.Set(false)
		return
	}
	go func() {
		if err := ra.api.Serve(); err != nil {
			log.Printf("Accent API stopped: %v", err)
			ra.apiRunning.Set(false)
		}
	}()
}

// Status reports the current state for the accent API.
func (ra *ReelApp) Status() api.Status {
	return api.Status{
		State:  ra.player.State().String(),
		Video:  ra.player.Current(),
		Accent: ra.player.Accent().Hex(),
	}
}

// Thumbnail returns the stored thumbnail of the current video.
func (ra *ReelApp) Thumbnail() []byte {
	return ra.cfg.GetThumbnail()
}

// checkForUpdates adds an update menu item when a newer release exists.
func (ra *ReelApp) checkForUpdates() {
	if !ra.cfg.GetUpdateCheckEnabled() {
		return
	}
	rel, err := util.NewUpdateChecker(http.DefaultClient).Latest(ra.ctx)
	if errors.Is(err, util.ErrDevBuild) {
		log.Debug("Skipping update check for development build")
		return
	}
	if err != nil {
		log.Printf("Update check failed: %v", err)
		return
	}
	if rel == nil {
		return
	}
	log.Printf("Update available: %s", rel.Version)

	fyne.Do(func() {
		if ra.trayMenu == nil {
			return
		}
		item := ra.createMenuItem(updateMenuItemPrefix+rel.Version, func() {
			if err := ra.app.OpenURL(rel.URL); err != nil {
				log.Printf("Failed to open release page: %v", err)
			}
		}, "tray.png")
		// Insert above the Quit separator.
		items := ra.trayMenu.Items
		at := len(items) - 2
		ra.trayMenu.Items = append(items[:at:at], append([]*fyne.MenuItem{item}, items[at:]...)...)
		ra.refreshTrayMenu()
	})
}

// showError shows err in a dialog on the preferences window, or as a notification.
func (ra *ReelApp) showError(err error) {
	fyne.Do(func() {
		if ra.prefsWindow != nil {
			dialog.ShowError(err, ra.prefsWindow)
			return
		}
		ra.app.SendNotification(fyne.NewNotification(config.AppName, err.Error()))
	})
}

// start brings up the background services once the event loop runs.
func (ra *ReelApp) start() {
	ra.battery.Start(ra.ctx)
	ra.applyAccentBroadcast()
	if err := ra.hotkeys.Start(ra.TogglePlayback); err != nil {
		log.Printf("Play/pause shortcut unavailable: %v", err)
	}
	go ra.checkForUpdates()
	go func() {
		if err := ra.resumeLastVideo(); err != nil && !errors.Is(err, player.ErrNoVideo) {
			log.Printf("Failed to resume last video: %v", err)
		}
	}()
}

// Shutdown stops playback and every background service.
func (ra *ReelApp) Shutdown() {
	ra.mu.Lock()
	defer ra.mu.Unlock()
	if ra.ctx.Err() != nil {
		return
	}
	ra.cancel()

	ra.hotkeys.Stop()
	ra.battery.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := ra.api.Stop(ctx); err != nil {
		log.Printf("Failed to stop accent API: %v", err)
	}
	wasStopped := ra.player.State() == player.StateStopped
	ra.player.Stop()
	if !wasStopped {
		ra.applyStill(ctx)
	}
	log.Print("Shutdown complete.")
}

// setupLifecycle hooks the application lifecycle events.
func (ra *ReelApp) setupLifecycle() {
	lc := ra.app.Lifecycle()
	lc.SetOnStarted(ra.start)
	lc.SetOnEnteredForeground(ra.onEnteredForeground)
	lc.SetOnExitedForeground(ra.onExitedForeground)
	lc.SetOnStopped(ra.Shutdown)
	ra.os.SetupLifecycle(ra.app, ra)
}

// Run runs the application
func (ra *ReelApp) Run() {
	ra.CreateTrayMenu()
	ra.setupLifecycle()
	ra.verifyEULA()
	ra.app.Run()
}
