package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/util"
	"github.com/dixieflatline76/Reel/util/log"
)

// verifyEULA shows the splash screen if the EULA was accepted, otherwise it asks
// for acceptance first.
func (ra *ReelApp) verifyEULA() {
	text, err := ra.assetMgr.Text("eula.txt")
	if err != nil {
		log.Fatalf("Error loading EULA: %v", err)
	}
	eula := util.NewEULA(text, ra.app.Preferences())
	if eula.Accepted() {
		ra.CreateSplashScreen(startupSplashTime)
		return
	}
	ra.displayEULAAcceptance(eula)
}

// displayEULAAcceptance displays the End User License Agreement and prompts the user
// to accept it. If the user declines, the application will quit.
func (ra *ReelApp) displayEULAAcceptance(eula *util.EULA) {
	eulaWindow := ra.app.NewWindow(config.AppName + " EULA")
	eulaWindow.Resize(fyne.NewSize(800, 600))
	eulaWindow.CenterOnScreen()
	eulaWindow.SetCloseIntercept(func() {
		// The window only closes through Accept or Decline.
	})

	eulaWdgt := widget.NewRichTextWithText(eula.Text)
	eulaWdgt.Wrapping = fyne.TextWrapWord
	eulaScroll := container.NewVScroll(eulaWdgt)
	eulaDialog := dialog.NewCustomConfirm("To continue using "+config.AppName+", please review and accept the End User License Agreement.", "Accept", "Decline", eulaScroll, func(accepted bool) {
		if !accepted {
			ra.app.Quit()
			return
		}
		eula.Accept()
		eulaWindow.Close()
		ra.os.TransformToBackground()
		ra.CreateSplashScreen(startupSplashTime)
	}, eulaWindow)

	eulaDialog.Resize(fyne.NewSize(795, 595))
	ra.os.TransformToForeground()
	eulaDialog.Show()
	eulaWindow.Show()
}
