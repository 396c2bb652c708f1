//go:build darwin

package player

// platformArgs pins the window to the desktop level and hides it from the Dock.
func platformArgs() []string {
	return []string{
		"--ontop",
		"--ontop-level=desktop",
		"--macos-app-activation-policy=prohibit",
		"--native-fs=no",
	}
}
