// Package xdg provides helpers to resolve XDG Base Directory paths for pg-human.
// It falls back to the traditional dotfile locations when the XDG environment
// variables are unset and creates directories with private permissions, since
// the config dir sits next to credential-adjacent state.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for pg-human.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/pghuman when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "pghuman")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
