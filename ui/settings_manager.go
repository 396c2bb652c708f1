package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dixieflatline76/Reel/pkg/ui/setting"
)

// SettingsManager handles UI elements for settings. Changes are queued per
// setting name and committed together by the Apply Changes button.
type SettingsManager struct {
	changes     *setting.Changes
	applyButton *widget.Button
	prefsWindow fyne.Window
}

// NewSettingsManager creates a new SettingsManager.
func NewSettingsManager(window fyne.Window) setting.SettingsManager {
	sm := &SettingsManager{
		changes:     setting.NewChanges(),
		prefsWindow: window,
	}
	sm.applyButton = widget.NewButton("Apply Changes", func() {
		sm.changes.Apply()
		sm.refreshApply()
	})
	sm.applyButton.Disable()
	return sm
}

func (sm *SettingsManager) refreshApply() {
	if sm.HasPendingChanges() {
		sm.applyButton.Enable()
	} else {
		sm.applyButton.Disable()
	}
}

// track queues apply for name when v differs from the committed value held in
// *initial and drops the queued edit otherwise.
func track[T comparable](sm *SettingsManager, name string, v T, initial *T, apply func(T)) {
	if v == *initial {
		sm.changes.Remove(name)
	} else {
		sm.changes.Set(name, func() {
			apply(v)
			*initial = v
		})
	}
	sm.refreshApply()
}

// GetApplySettingsButton returns the Apply Changes button from the SettingsManager to be used in the UI.
func (sm *SettingsManager) GetApplySettingsButton() *widget.Button {
	return sm.applyButton
}

// CreateSelectSetting creates a reusable select widget.
func (sm *SettingsManager) CreateSelectSetting(cfg *setting.SelectConfig, header *fyne.Container) *widget.Select {
	selectWidget := widget.NewSelect(cfg.Options, func(selected string) {})
	selectWidget.SetSelectedIndex(cfg.InitialValue)

	header.Add(splitRow(cfg.Label, selectWidget))
	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}

	selectWidget.OnChanged = func(s string) {
		selectedIndex := selectWidget.SelectedIndex()
		if cfg.OnChanged != nil {
			cfg.OnChanged(s, selectedIndex)
		}
		track(sm, cfg.Name, selectedIndex, &cfg.InitialValue, cfg.ApplyFunc)
	}
	return selectWidget
}

// CreateBoolSetting creates a reusable boolean check setting.
func (sm *SettingsManager) CreateBoolSetting(cfg *setting.BoolConfig, header *fyne.Container) *widget.Check {
	check := widget.NewCheck("", func(b bool) {}) // Use empty string, label is CanvasObject
	check.SetChecked(cfg.InitialValue)

	header.Add(splitRow(cfg.Label, check))
	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}

	check.OnChanged = func(b bool) {
		if cfg.OnChanged != nil {
			cfg.OnChanged(b)
		}
		track(sm, cfg.Name, b, &cfg.InitialValue, cfg.ApplyFunc)
	}
	return check
}

// CreateSliderSetting creates an integer slider with a live value label.
func (sm *SettingsManager) CreateSliderSetting(cfg *setting.SliderConfig, header *fyne.Container) *widget.Slider {
	format := cfg.Format
	if format == nil {
		format = strconv.Itoa
	}

	slider := widget.NewSlider(float64(cfg.Min), float64(cfg.Max))
	if cfg.Step > 0 {
		slider.Step = float64(cfg.Step)
	}
	slider.SetValue(float64(cfg.InitialValue))
	valueLabel := widget.NewLabel(format(cfg.InitialValue))

	header.Add(splitRow(cfg.Label, slider))
	if cfg.HelpContent != nil {
		header.Add(splitRowOpposed(cfg.HelpContent, valueLabel))
	} else {
		header.Add(splitRowOpposed(widget.NewLabel(""), valueLabel))
	}

	slider.OnChanged = func(f float64) {
		v := int(f)
		valueLabel.SetText(format(v))
		track(sm, cfg.Name, v, &cfg.InitialValue, cfg.ApplyFunc)
	}
	return slider
}

// CreateButtonWithConfirmationSetting creates a reusable button setting with confirmation dialog.
func (sm *SettingsManager) CreateButtonWithConfirmationSetting(cfg *setting.ButtonWithConfirmationConfig, header *fyne.Container) {
	button := widget.NewButton(cfg.ButtonText, func() {
		if cfg.ConfirmTitle != "" && cfg.ConfirmMessage != "" {
			d := dialog.NewConfirm(cfg.ConfirmTitle, cfg.ConfirmMessage, func(b bool) {
				if b {
					cfg.OnPressed()
				}
			}, sm.prefsWindow)
			d.Show()
		} else {
			cfg.OnPressed()
		}
	})

	if cfg.Label != nil {
		header.Add(splitRow(cfg.Label, button))
	} else {
		header.Add(button)
	}

	if cfg.HelpContent != nil {
		header.Add(cfg.HelpContent)
	}
}

// HasPendingChanges reports whether any setting change waits for Apply.
func (sm *SettingsManager) HasPendingChanges() bool {
	return sm.changes.Len() > 0
}
