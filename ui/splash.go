package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/util/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// addVersionWatermark draws the application version in the bottom right corner of img.
func addVersionWatermark(img image.Image) image.Image {
	versionString := fmt.Sprintf("Version: %s", config.AppVersion)

	watermark := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.Transparent)
	col := color.NRGBA{R: 40, G: 60, B: 110, A: 200}

	bounds, _ := font.BoundString(basicfont.Face7x13, versionString)
	textWidth := bounds.Max.X.Ceil()

	d := &font.Drawer{
		Dst:  watermark,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(img.Bounds().Dx() - textWidth - 10),
			Y: fixed.I(img.Bounds().Dy() - 10),
		},
	}
	d.DrawString(versionString)

	return imaging.Overlay(img, watermark, image.Pt(0, 0), 1)
}

// CreateSplashScreen shows the splash image with the version for d, then closes it.
func (ra *ReelApp) CreateSplashScreen(d time.Duration) {
	drv, ok := ra.app.Driver().(desktop.Driver)
	if !ok {
		log.Println("Splash screen not supported")
		return
	}

	splashImg, err := ra.assetMgr.Image("splash.png")
	if err != nil {
		log.Printf("Failed to load splash image: %v", err)
		return
	}

	img := canvas.NewImageFromImage(addVersionWatermark(splashImg))
	img.FillMode = canvas.ImageFillOriginal

	splashWindow := drv.CreateSplashWindow()
	splashWindow.SetContent(img)
	splashWindow.Resize(fyne.NewSize(300, 300))
	splashWindow.CenterOnScreen()
	splashWindow.Show()

	time.AfterFunc(d, func() {
		fyne.Do(splashWindow.Close)
	})
}
