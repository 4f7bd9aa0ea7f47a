package dirs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestXDGOverrides(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG variables only apply on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{name: "config", fn: ConfigDir, want: filepath.Join(base, "cfg", "ffpb")},
		{name: "state", fn: StateDir, want: filepath.Join(base, "state", "ffpb")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("%s dir error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("%s dir = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestHomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("home layout checked on linux only")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error = %v", err)
	}
	if want := filepath.Join(home, ".local", "state", "ffpb"); got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestEnsure(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Errorf("Ensure(\"\") error = nil, want error")
	}
	p := filepath.Join(t.TempDir(), "a", "b")
	if err := Ensure(p); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
		t.Errorf("Ensure() did not create %q: %v", p, err)
	}
}
