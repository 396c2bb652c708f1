package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

func newWrappedLabel(text string, importance widget.Importance, style fyne.TextStyle) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.Importance = importance
	label.TextStyle = style
	return label
}

// CreateSectionTitleLabel creates the heading of a group of settings.
func (sm *SettingsManager) CreateSectionTitleLabel(text string) *widget.Label {
	return newWrappedLabel(text, widget.HighImportance, fyne.TextStyle{Bold: true})
}

// CreateSettingTitleLabel creates the name label of a single setting.
func (sm *SettingsManager) CreateSettingTitleLabel(text string) *widget.Label {
	return newWrappedLabel(text, widget.MediumImportance, fyne.TextStyle{Bold: true})
}

// CreateSettingDescriptionLabel creates the help text shown under a setting.
func (sm *SettingsManager) CreateSettingDescriptionLabel(text string) fyne.CanvasObject {
	return newWrappedLabel(text, widget.LowImportance, fyne.TextStyle{Italic: true})
}
