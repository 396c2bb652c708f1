//go:build linux

package still

import (
	"context"
	"os"

	"github.com/dixieflatline76/Reel/pkg/frame"
)

type linuxSetter struct {
	run frame.Runner
}

func newPlatformSetter(run frame.Runner) Setter {
	return linuxSetter{run: run}
}

// SetWallpaper detects the desktop environment and runs its wallpaper commands.
func (s linuxSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	cmds, err := linuxCommands(desktopEnv, os.Getenv("WAYLAND_DISPLAY") != "", imagePath)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if _, err := s.run(ctx, cmd[0], cmd[1:]...); err != nil {
			return err
		}
	}
	return nil
}

func platformScreen(run frame.Runner) ScreenFunc {
	return func(ctx context.Context) (int, int, error) {
		out, err := run(ctx, "xdpyinfo")
		if err != nil {
			return 0, 0, err
		}
		return parseXdpyinfo(string(out))
	}
}
