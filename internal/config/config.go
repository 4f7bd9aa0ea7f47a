package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ffpb/internal/dirs"
	"ffpb/internal/interpreter"
	"ffpb/internal/logging"
	"ffpb/internal/model"
)

// Keys, as written in config.yaml and (upper-cased) after the FFPB_ prefix.
const (
	KeyFFmpegPath   = "ffmpeg_path"
	KeyUI           = "ui"
	KeyPollInterval = "poll_interval"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyLogFile      = "log_file"
	KeyHistory      = "history"
	KeyVerbose      = "verbose"
)

// DefaultHistory is how many ffmpeg output lines are replayed on failure.
const DefaultHistory = 20

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"ffmpeg":        KeyFFmpegPath,
	"ui":            KeyUI,
	"poll-interval": KeyPollInterval,
	"log-level":     KeyLogLevel,
	"log-format":    KeyLogFormat,
	"log-file":      KeyLogFile,
	"history":       KeyHistory,
	"verbose":       KeyVerbose,
}

// Init wires v with the config file search path, FFPB_* environment variables,
// defaults and flag bindings. A missing config file is not an error.
func Init(v *viper.Viper, flags *pflag.FlagSet) error {
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		v.AddConfigPath(cfgDir)
	}
	v.SetConfigName("config") // config.{yaml|yml|json|toml}

	v.SetEnvPrefix("FFPB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyUI, string(model.UIAuto))
	v.SetDefault(KeyPollInterval, interpreter.DefaultPollInterval)
	v.SetDefault(KeyLogLevel, logging.LevelOff)
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyHistory, DefaultHistory)

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load reads and validates the options from an initialized viper instance.
func Load(v *viper.Viper) (model.Options, error) {
	ui, ok := model.ParseUIMode(strings.ToLower(v.GetString(KeyUI)))
	if !ok {
		return model.Options{}, fmt.Errorf("invalid ui %q (valid: auto|tui|plain|none)", v.GetString(KeyUI))
	}

	poll := v.GetDuration(KeyPollInterval)
	if poll <= 0 {
		return model.Options{}, fmt.Errorf("invalid poll interval %q: must be positive", v.GetString(KeyPollInterval))
	}

	level := v.GetString(KeyLogLevel)
	if _, _, err := logging.ParseLevel(level); err != nil {
		return model.Options{}, err
	}
	format := v.GetString(KeyLogFormat)
	if !logging.ValidFormat(format) {
		return model.Options{}, fmt.Errorf("invalid log format %q (valid: text|json)", format)
	}

	history := v.GetInt(KeyHistory)
	if history < 0 {
		return model.Options{}, fmt.Errorf("invalid history %d: must not be negative", history)
	}

	return model.Options{
		FFmpegPath:   strings.TrimSpace(v.GetString(KeyFFmpegPath)),
		UI:           ui,
		PollInterval: poll,
		LogLevel:     level,
		LogFormat:    format,
		LogFile:      v.GetString(KeyLogFile),
		History:      history,
		Verbose:      v.GetBool(KeyVerbose),
	}, nil
}

// ConfigFile returns the config file in use, or "" when none was found.
func ConfigFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// RegisterFlags defines ffpb's own flags on fs. They are only parsed from the
// arguments before a bare "--".
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("ffmpeg", "", "Path to the ffmpeg binary (default: look up on PATH)")
	fs.String("ui", string(model.UIAuto), "Progress display: auto, tui, plain, none")
	fs.Duration("poll-interval", interpreter.DefaultPollInterval, "Pause between reads of ffmpeg's stats line")
	fs.String("log-level", logging.LevelOff, "Log level: off, debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text, json")
	fs.String("log-file", "", "Log file path (default: <state dir>/ffpb.log)")
	fs.Int("history", DefaultHistory, "ffmpeg output lines shown when a run fails")
	fs.BoolP("verbose", "v", false, "Print the resolved ffmpeg command before running it")
}
