// Package asset serves the images, icons and texts embedded in the binary.
package asset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed images/* icons/* text/*
var embedded embed.FS

// Manager loads embedded assets and caches decoded icons.
type Manager struct {
	files fs.FS

	mu     sync.Mutex
	icons  map[string]fyne.Resource
	glyphs map[string]image.Image
}

// NewManager creates a manager over the embedded assets.
func NewManager() *Manager {
	return newManager(embedded)
}

func newManager(files fs.FS) *Manager {
	return &Manager{
		files:  files,
		icons:  make(map[string]fyne.Resource),
		glyphs: make(map[string]image.Image),
	}
}

// Image decodes the image asset name.
func (m *Manager) Image(name string) (image.Image, error) {
	data, err := fs.ReadFile(m.files, "images/"+name)
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", name, err)
	}
	return img, nil
}

// Icon returns the icon asset name as a fyne resource.
func (m *Manager) Icon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, errors.New("icon name is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if res, ok := m.icons[name]; ok {
		return res, nil
	}
	data, err := fs.ReadFile(m.files, "icons/"+name)
	if err != nil {
		return nil, fmt.Errorf("loading icon %s: %w", name, err)
	}
	res := fyne.NewStaticResource(name, data)
	m.icons[name] = res
	return res, nil
}

// Glyph returns the icon asset name decoded, for recoloring.
func (m *Manager) Glyph(name string) (image.Image, error) {
	res, err := m.Icon(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.glyphs[name]; ok {
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(res.Content()))
	if err != nil {
		return nil, fmt.Errorf("decoding icon %s: %w", name, err)
	}
	m.glyphs[name] = img
	return img, nil
}

// Text returns the text asset name.
func (m *Manager) Text(name string) (string, error) {
	data, err := fs.ReadFile(m.files, "text/"+name)
	if err != nil {
		return "", fmt.Errorf("loading text %s: %w", name, err)
	}
	return string(data), nil
}
