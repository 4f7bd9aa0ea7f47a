// Package dirs resolves the per-user locations ffpb reads its config file from
// and writes its log file to.
package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory created under each base location.
const appName = "ffpb"

// ConfigDir holds config.yaml (or .toml/.json).
//   - Linux: $XDG_CONFIG_HOME/ffpb or ~/.config/ffpb
//   - macOS: ~/Library/Application Support/ffpb
//   - Windows: %AppData%/ffpb
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", []string{".config"}, nil, func() (string, error) {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	})
}

// StateDir holds the default log file.
//   - Linux: $XDG_STATE_HOME/ffpb or ~/.local/state/ffpb
//   - macOS: ~/Library/Application Support/ffpb/state
//   - Windows: %LocalAppData%/ffpb/state, else <ConfigDir>/state
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", []string{".local", "state"}, []string{"state"}, func() (string, error) {
		if la := os.Getenv("LOCALAPPDATA"); la != "" {
			return filepath.Join(la, appName, "state"), nil
		}
		cfg, err := ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, "state"), nil
	})
}

// resolve applies the XDG rules on Linux and Application Support on macOS;
// other systems use fallback.
func resolve(xdgEnv string, linuxHome, darwinSub []string, fallback func() (string, error)) (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv(xdgEnv); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(append(append([]string{home}, linuxHome...), appName)...), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		parts := append([]string{home, "Library", "Application Support", appName}, darwinSub...)
		return filepath.Join(parts...), nil
	default:
		return fallback()
	}
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}
