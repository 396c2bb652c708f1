package still

import (
	"fmt"
	"strings"
)

// command is a program with its arguments.
type command []string

// appleScript returns the osascript program setting every desktop to imagePath.
func appleScript(imagePath string) command {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to POSIX file %q`, imagePath)
	return command{"osascript", "-e", script}
}

// linuxCommands picks the commands that set imagePath as the desktop picture for
// the given desktop environment (XDG_CURRENT_DESKTOP or DESKTOP_SESSION).
func linuxCommands(desktopEnv string, wayland bool, imagePath string) ([]command, error) {
	env := strings.ToLower(desktopEnv)
	uri := "file://" + imagePath

	gnome := []command{
		{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri},
		{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri},
	}

	switch {
	case strings.Contains(env, "gnome") || strings.Contains(env, "unity") ||
		strings.Contains(env, "cinnamon") || strings.Contains(env, "mutter"):
		return gnome, nil
	case strings.Contains(env, "sway"):
		return []command{{"swaymsg", "output", "*", "bg", imagePath, "fill"}}, nil
	case wayland:
		return nil, fmt.Errorf("%w: Wayland compositor %q", ErrUnsupported, desktopEnv)
	case strings.Contains(env, "kde"):
		script := fmt.Sprintf(`var all = desktops();
for (var i = 0; i < all.length; i++) {
    var d = all[i];
    d.wallpaperPlugin = "org.kde.image";
    d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
    d.writeConfig("Image", %q);
}`, uri)
		return []command{{"qdbus", "org.kde.plasmashell", "/PlasmaShell", "org.kde.PlasmaShell.evaluateScript", script}}, nil
	case strings.Contains(env, "xfce"):
		return []command{{"xfconf-query", "--channel", "xfce4-desktop",
			"--property", "/backdrop/screen0/monitor0/workspace0/last-image", "--set", imagePath}}, nil
	default:
		return nil, fmt.Errorf("%w: desktop environment %q", ErrUnsupported, desktopEnv)
	}
}
