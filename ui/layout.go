package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// splitLayout places a label and its control side by side, giving the first
// object a fixed fraction of the row width.
type splitLayout struct {
	first, second fyne.CanvasObject
	ratio         float32
	opposed       bool // push the second object to the right edge
}

// MinSize calculates the minimum size.
func (s *splitLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	a, b := s.first.MinSize(), s.second.MinSize()
	return fyne.NewSize(a.Width+b.Width, fyne.Max(a.Height, b.Height))
}

// Layout arranges the widgets.
func (s *splitLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	firstWidth := size.Width * s.ratio
	secondWidth := size.Width - firstWidth

	s.first.Resize(fyne.NewSize(firstWidth, s.first.MinSize().Height))
	s.first.Move(fyne.NewPos(0, 0))

	w := secondWidth
	if s.opposed {
		w = fyne.Min(secondWidth, s.second.MinSize().Width)
	}
	s.second.Resize(fyne.NewSize(w, s.second.MinSize().Height))
	s.second.Move(fyne.NewPos(size.Width-w, 0))
}

// splitRow lays out a label taking a third of the row next to its control.
func splitRow(first, second fyne.CanvasObject) *fyne.Container {
	return container.New(&splitLayout{first: first, second: second, ratio: 1.0 / 3}, first, second)
}

// splitRowOpposed lays out first on the left and keeps second at its minimum width on the right.
func splitRowOpposed(first, second fyne.CanvasObject) *fyne.Container {
	return container.New(&splitLayout{first: first, second: second, ratio: 2.0 / 3, opposed: true}, first, second)
}
