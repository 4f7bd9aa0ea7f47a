package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ffpb/internal/config"
	"ffpb/internal/encoder"
	"ffpb/internal/logging"
	"ffpb/internal/model"
	"ffpb/internal/ui"
	"ffpb/internal/util/deps"
)

// splitArgs separates ffpb's flags from ffmpeg's arguments at the first bare
// "--". Without one, everything is ffmpeg's.
func splitArgs(args []string) (own, forward []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return nil, args
}

func runForward(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		return cmd.Help()
	}

	own, ffArgs := splitArgs(args)
	flags := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.AddFlagSet(cmd.PersistentFlags())
	if err := flags.Parse(own); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cmd.Help()
		}
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if rest := flags.Args(); len(rest) > 0 {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("unexpected argument %q before \"--\"", rest[0])}
	}
	if len(ffArgs) == 0 {
		return &ExitError{Code: ExitCLIError, Err: errors.New("no ffmpeg arguments after \"--\"")}
	}

	v := viper.New()
	if err := config.Init(v, cmd.PersistentFlags()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	opts, err := config.Load(v)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return runFFmpeg(cmd, ffArgs, opts)
}

func runFFmpeg(cmd *cobra.Command, args []string, opts model.Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
		Path:   opts.LogFile,
	})
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	defer closeLog()
	logger = logger.With("run_id", uuid.NewString())

	ffmpegPath, err := deps.FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		logger.Error("ffmpeg lookup failed", "error", err)
		return &ExitError{Code: ExitMissingDep, Err: err}
	}

	// The prompt relay and the renderer share the terminal; serialize them.
	out := ui.NewSyncWriter(cmd.ErrOrStderr())
	tty, width := false, ui.DefaultWidth
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		tty, width = ui.IsTerminal(f), ui.Width(f)
	}
	reporter := ui.NewReporter(opts.UI, out, tty, width, logger)
	logger.Debug("renderer selected", "ui", string(opts.UI), "tty", tty, "width", width)

	res, err := encoder.Encode(ctx, args, encoder.Options{
		FFmpegPath:   ffmpegPath,
		Verbose:      opts.Verbose,
		Reporter:     reporter,
		Runner:       runner,
		Prompt:       out,
		Stdin:        cmd.InOrStdin(),
		Stdout:       cmd.OutOrStdout(),
		PollInterval: opts.PollInterval,
		History:      opts.History,
		Logger:       logger,
	})
	if err == nil {
		return nil
	}

	code := exitCode(err, res)
	if code != ExitInterrupted {
		// ffmpeg's own explanation was swallowed along with its stats line.
		for _, line := range res.Tail {
			fmt.Fprintln(out, line)
		}
	}
	return &ExitError{Code: code, Err: err}
}

// exitCode maps an encoder failure to the process status.
func exitCode(err error, res encoder.Result) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	case errors.Is(err, encoder.ErrLaunch):
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return ExitMissingDep
		}
		return ExitLaunchError
	case errors.Is(err, encoder.ErrStreamCapture):
		return ExitLaunchError
	case errors.Is(err, encoder.ErrChildFailed) && res.ExitCode > 0:
		return res.ExitCode
	default:
		return ExitCLIError
	}
}
