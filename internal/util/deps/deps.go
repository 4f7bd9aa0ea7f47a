package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNotFound means no usable ffmpeg binary could be located.
var ErrNotFound = errors.New("ffmpeg not found")

// FindFFmpeg returns the path to ffmpeg. If customPath is non-empty it must
// name an existing file or something exec.LookPath can resolve; otherwise
// "ffmpeg" is looked up in PATH.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if fi, err := os.Stat(customPath); err == nil && !fi.IsDir() {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("%w at %q", ErrNotFound, customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w in PATH; install ffmpeg or pass --ffmpeg", ErrNotFound)
}
