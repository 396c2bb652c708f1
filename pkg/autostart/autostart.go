// Package autostart registers the application to launch at user login.
package autostart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"github.com/dixieflatline76/Reel/util/log"
)

// ErrUnsupported is returned on platforms without a login item mechanism.
var ErrUnsupported = errors.New("autostart not supported on this platform")

const launchAgentTmpl = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.ID | html}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.Exec | html}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`

const desktopEntryTmpl = `[Desktop Entry]
Type=Application
Name={{.Name}}
Exec="{{.Exec | quoteExec}}"
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

// execQuoter escapes the characters that are reserved inside a quoted desktop entry Exec argument.
var execQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)

var (
	launchAgent  = template.Must(template.New("plist").Parse(launchAgentTmpl))
	desktopEntry = template.Must(template.New("desktop").Funcs(template.FuncMap{
		"quoteExec": execQuoter.Replace,
	}).Parse(desktopEntryTmpl))
)

// Manager writes and removes the login item for one application.
type Manager struct {
	Name string // Display name, e.g. "Reel"
	ID   string // Reverse-DNS identifier, e.g. "com.example.reel"
	Exec string // Absolute path of the executable to launch
	Home string // User home directory
	GOOS string
}

// NewManager creates a Manager for the running executable and current user.
func NewManager(name, id string) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return &Manager{Name: name, ID: id, Exec: exe, Home: home, GOOS: runtime.GOOS}, nil
}

// Path returns the login item file location for the manager's platform.
func (m *Manager) Path() (string, error) {
	switch m.GOOS {
	case "darwin":
		return filepath.Join(m.Home, "Library", "LaunchAgents", m.ID+".plist"), nil
	case "linux":
		return filepath.Join(m.Home, ".config", "autostart", m.ID+".desktop"), nil
	default:
		return "", ErrUnsupported
	}
}

// Enable writes the login item.
func (m *Manager) Enable() error {
	path, err := m.Path()
	if err != nil {
		return err
	}

	tmpl := desktopEntry
	if m.GOOS == "darwin" {
		tmpl = launchAgent
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return fmt.Errorf("rendering login item: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating login item directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing login item: %w", err)
	}
	log.Printf("Autostart enabled: %s", path)
	return nil
}

// Disable removes the login item. Removing a missing item is not an error.
func (m *Manager) Disable() error {
	path, err := m.Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing login item: %w", err)
	}
	log.Printf("Autostart disabled: %s", path)
	return nil
}

// IsEnabled reports whether the login item exists.
func (m *Manager) IsEnabled() bool {
	path, err := m.Path()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Apply enables or disables the login item.
func (m *Manager) Apply(enabled bool) error {
	if enabled {
		return m.Enable()
	}
	return m.Disable()
}
