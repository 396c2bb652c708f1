//go:build !darwin

package player

// platformArgs keeps the window below normal windows.
func platformArgs() []string {
	return []string{
		"--ontop=no",
		"--x11-name=reel-wallpaper",
	}
}
