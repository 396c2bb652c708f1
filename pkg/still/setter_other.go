//go:build !darwin && !linux && !windows

package still

import (
	"context"
	"errors"

	"github.com/dixieflatline76/Reel/pkg/frame"
)

type noSetter struct{}

func newPlatformSetter(frame.Runner) Setter {
	return noSetter{}
}

func (noSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	return ErrUnsupported
}

func platformScreen(frame.Runner) ScreenFunc {
	return func(ctx context.Context) (int, int, error) {
		return 0, 0, errors.New("screen size unavailable")
	}
}
