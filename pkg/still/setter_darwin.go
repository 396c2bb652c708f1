//go:build darwin

package still

import (
	"context"

	"github.com/dixieflatline76/Reel/pkg/frame"
)

type darwinSetter struct {
	run frame.Runner
}

func newPlatformSetter(run frame.Runner) Setter {
	return darwinSetter{run: run}
}

// SetWallpaper sets the picture of every desktop through System Events.
func (s darwinSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	cmd := appleScript(imagePath)
	_, err := s.run(ctx, cmd[0], cmd[1:]...)
	return err
}

func platformScreen(run frame.Runner) ScreenFunc {
	return func(ctx context.Context) (int, int, error) {
		out, err := run(ctx, "system_profiler", "SPDisplaysDataType", "-json")
		if err != nil {
			return 0, 0, err
		}
		return parseProfilerJSON(out)
	}
}
