package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ffpb/internal/model"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("ffpb", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return fs
}

// isolate points the config search path at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir override relies on XDG_CONFIG_HOME")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	for _, k := range []string{"FFPB_UI", "FFPB_POLL_INTERVAL", "FFPB_LOG_LEVEL", "FFPB_HISTORY", "FFPB_FFMPEG_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return filepath.Join(base, "ffpb")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	v := viper.New()
	if err := Init(v, newFlags(t)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := model.Options{
		UI:           model.UIAuto,
		PollInterval: 100 * time.Millisecond,
		LogLevel:     "off",
		LogFormat:    "text",
		History:      DefaultHistory,
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if f := ConfigFile(v); f != "" {
		t.Errorf("ConfigFile() = %q, want none", f)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "ui: plain\nhistory: 5\nffmpeg_path: /opt/ffmpeg/bin/ffmpeg\npoll_interval: 250ms\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFPB_HISTORY", "7")

	v := viper.New()
	if err := Init(v, newFlags(t, "--ui", "none")); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.UI != model.UINone {
		t.Errorf("UI = %q, want %q (flag wins)", got.UI, model.UINone)
	}
	if got.History != 7 {
		t.Errorf("History = %d, want 7 (env beats file)", got.History)
	}
	if got.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q, want value from file", got.FFmpegPath)
	}
	if got.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want 250ms", got.PollInterval)
	}
	if !strings.HasSuffix(ConfigFile(v), "config.yaml") {
		t.Errorf("ConfigFile() = %q, want config.yaml", ConfigFile(v))
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "ui", args: []string{"--ui", "fancy"}, want: "invalid ui"},
		{name: "poll", args: []string{"--poll-interval", "0s"}, want: "poll interval"},
		{name: "level", args: []string{"--log-level", "loud"}, want: "log level"},
		{name: "format", args: []string{"--log-format", "xml"}, want: "log format"},
		{name: "history", args: []string{"--history", "-1"}, want: "history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			v := viper.New()
			if err := Init(v, newFlags(t, tt.args...)); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			_, err := Load(v)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
