//go:build windows

package still

import (
	"context"
	"syscall"
	"unsafe"

	"github.com/dixieflatline76/Reel/pkg/frame"
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
	getSystemMetrics     = user32.NewProc("GetSystemMetrics")
)

// Windows API constants
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
	smCXScreen          = 0
	smCYScreen          = 1
)

type windowsSetter struct{}

func newPlatformSetter(frame.Runner) Setter {
	return windowsSetter{}
}

// SetWallpaper sets the desktop picture through SystemParametersInfoW.
func (windowsSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	p, err := syscall.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}
	ret, _, err := systemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(p)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return err
	}
	return nil
}

func platformScreen(frame.Runner) ScreenFunc {
	return func(ctx context.Context) (int, int, error) {
		w, _, _ := getSystemMetrics.Call(uintptr(smCXScreen))
		h, _, _ := getSystemMetrics.Call(uintptr(smCYScreen))
		return int(w), int(h), nil
	}
}
