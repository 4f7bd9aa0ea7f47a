// Package encoder runs ffmpeg under the progress interpreter.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ffpb/internal/interpreter"
	"ffpb/internal/logging"
	"ffpb/internal/progress"
	"ffpb/internal/util"
)

var (
	// ErrLaunch means ffmpeg could not be started.
	ErrLaunch = errors.New("launch ffmpeg")
	// ErrStreamCapture means ffmpeg's diagnostic stream could not be attached.
	ErrStreamCapture = errors.New("capture ffmpeg output")
	// ErrChildFailed means ffmpeg exited with a non-zero status.
	ErrChildFailed = errors.New("ffmpeg failed")
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath   string
	Verbose      bool              // echo the command line before starting
	Reporter     progress.Reporter // progress renderer
	Runner       util.CmdRunner    // defaults to util.NewDefaultRunner()
	Prompt       io.Writer         // where overwrite questions are relayed; defaults to os.Stderr
	Stdin        io.Reader         // defaults to os.Stdin
	Stdout       io.Writer         // defaults to os.Stdout
	PollInterval time.Duration
	History      int
	Logger       *slog.Logger
}

// Result describes a finished ffmpeg run.
type Result struct {
	Progress progress.Snapshot
	ExitCode int      // -1 when ffmpeg did not exit normally
	Tail     []string // last lines of ffmpeg's diagnostic output
}

// Encode runs ffmpeg with args, untouched, and reports its progress until it
// exits. The returned error wraps ErrLaunch, ErrStreamCapture or
// ErrChildFailed, an interpreter error, or the context's error.
func Encode(ctx context.Context, args []string, opts Options) (Result, error) {
	if opts.FFmpegPath == "" {
		return Result{ExitCode: -1}, fmt.Errorf("%w: ffmpeg path is required", ErrLaunch)
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	log.Info("starting ffmpeg", "path", opts.FFmpegPath, "args", args)
	proc, err := runner.Start(ctx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    args,
		Verbose: opts.Verbose,
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Echo:    opts.Prompt,
	})
	if err != nil {
		if errors.Is(err, util.ErrPipe) {
			return Result{ExitCode: -1}, fmt.Errorf("%w: %w", ErrStreamCapture, err)
		}
		return Result{ExitCode: -1}, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	in := interpreter.New(proc.Stderr(), interpreter.Options{
		Reporter:     opts.Reporter,
		Output:       opts.Prompt,
		PollInterval: opts.PollInterval,
		History:      opts.History,
		Logger:       log,
	})
	coreErr := in.Run(ctx)
	if coreErr != nil {
		// Keep ffmpeg from blocking on a full pipe; it is left to finish on its own.
		if err := in.Drain(); err != nil {
			log.Warn("drain ffmpeg output", "error", err)
		}
	}

	code, waitErr := proc.Wait()
	res := Result{
		Progress: in.Snapshot(),
		ExitCode: code,
		Tail:     in.Tail(),
	}
	log.Info("ffmpeg exited", "code", code, "current", res.Progress.Current, "total", res.Progress.Total, "unit", res.Progress.Unit.String())

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if code != 0 {
		err := fmt.Errorf("%w: exit status %d", ErrChildFailed, code)
		if code < 0 && waitErr != nil {
			err = fmt.Errorf("%w: %w", ErrChildFailed, waitErr)
		}
		// Without a banner there is nothing to add to ffmpeg's own failure.
		if coreErr != nil && !errors.Is(coreErr, interpreter.ErrUnexpectedEOF) {
			err = errors.Join(err, coreErr)
		}
		return res, err
	}
	return res, coreErr
}
