package setting

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SettingsHelper creates the labels of the preferences window.
type SettingsHelper interface {
	CreateSectionTitleLabel(text string) *widget.Label
	CreateSettingTitleLabel(text string) *widget.Label
	CreateSettingDescriptionLabel(text string) fyne.CanvasObject
}

// SelectConfig describes a select setting. Values are option indexes.
type SelectConfig struct {
	Name         string
	Options      []string
	InitialValue int
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	OnChanged    func(string, int)
	ApplyFunc    func(int)
}

// BoolConfig describes a check box setting.
type BoolConfig struct {
	Name         string
	InitialValue bool
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	OnChanged    func(bool)
	ApplyFunc    func(bool)
}

// SliderConfig holds configuration for an integer slider widget.
type SliderConfig struct {
	Name         string
	Min, Max     int
	Step         int
	InitialValue int
	Format       func(int) string // Renders the value label, defaults to the number itself
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	ApplyFunc    func(int)
}

// ButtonWithConfirmationConfig describes an action button. OnPressed runs right
// away, without waiting for Apply, once the user confirms.
type ButtonWithConfirmationConfig struct {
	Name           string
	Label          fyne.CanvasObject
	HelpContent    fyne.CanvasObject
	ButtonText     string
	ConfirmTitle   string
	ConfirmMessage string
	OnPressed      func()
}

// StringOptions renders each option with its String method.
func StringOptions[T fmt.Stringer](options []T) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, option.String())
	}
	return out
}

// Changes queues edits per setting name until they are applied. A later edit of
// the same setting replaces the earlier one, and edits apply in first-edit order.
type Changes struct {
	order   []string
	pending map[string]func()
}

// NewChanges creates an empty queue.
func NewChanges() *Changes {
	return &Changes{pending: make(map[string]func())}
}

// Set queues apply for name.
func (c *Changes) Set(name string, apply func()) {
	if _, ok := c.pending[name]; !ok {
		c.order = append(c.order, name)
	}
	c.pending[name] = apply
}

// Remove drops the queued edit for name.
func (c *Changes) Remove(name string) {
	if _, ok := c.pending[name]; !ok {
		return
	}
	delete(c.pending, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of queued edits.
func (c *Changes) Len() int {
	return len(c.order)
}

// Apply runs and clears every queued edit.
func (c *Changes) Apply() {
	order, pending := c.order, c.pending
	c.order, c.pending = nil, make(map[string]func())
	for _, name := range order {
		pending[name]()
	}
}

// SettingsManager builds settings widgets whose edits are committed together by
// the Apply Changes button.
type SettingsManager interface {
	SettingsHelper

	CreateSelectSetting(cfg *SelectConfig, header *fyne.Container) *widget.Select
	CreateBoolSetting(cfg *BoolConfig, header *fyne.Container) *widget.Check
	CreateSliderSetting(cfg *SliderConfig, header *fyne.Container) *widget.Slider
	CreateButtonWithConfirmationSetting(cfg *ButtonWithConfirmationConfig, header *fyne.Container)

	GetApplySettingsButton() *widget.Button
	HasPendingChanges() bool
}
