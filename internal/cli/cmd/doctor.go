package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ffpb/internal/config"
	"ffpb/internal/logging"
	"ffpb/internal/util"
	"ffpb/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Show which ffmpeg ffpb would run and where its settings come from",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := config.Init(v, cmd.Flags()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			opts, err := config.Load(v)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}

			ff, err := deps.FindFFmpeg(opts.FFmpegPath)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			var version string
			_, err = runner.Run(cmd.Context(), util.CmdSpec{
				Path: ff,
				Args: []string{"-hide_banner", "-version"},
				// Only the first line names the build.
				StdoutLine: func(line string) {
					if version == "" {
						version = strings.TrimSpace(line)
					}
				},
			})
			if err != nil {
				return &ExitError{Code: ExitLaunchError, Err: fmt.Errorf("run %s -version: %w", ff, err)}
			}

			cfgFile := config.ConfigFile(v)
			if cfgFile == "" {
				cfgFile = "(none)"
			}
			logFile := "(disabled)"
			if _, enabled, _ := logging.ParseLevel(opts.LogLevel); enabled {
				if p, err := logging.Path(opts.LogFile); err == nil {
					logFile = p
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "FFmpeg:  %s\n", ff)
			fmt.Fprintf(out, "Version: %s\n", version)
			fmt.Fprintf(out, "Config:  %s\n", cfgFile)
			fmt.Fprintf(out, "Log:     %s\n", logFile)
			fmt.Fprintf(out, "UI:      %s\n", opts.UI)
			return nil
		},
	}
}
