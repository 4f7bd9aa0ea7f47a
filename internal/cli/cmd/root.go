package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"ffpb/internal/config"
	"ffpb/internal/util"
)

const (
	ExitOK          = 0
	ExitCLIError    = 1
	ExitMissingDep  = 2
	ExitLaunchError = 3
	ExitInterrupted = 130
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// runner starts ffmpeg for both the root command and doctor.
var runner util.CmdRunner = util.NewDefaultRunner()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ffpb [ffpb flags --] [ffmpeg options]",
		Short: "ffmpeg with a progress bar",
		Long: `ffpb runs ffmpeg with the arguments you give it, unchanged, and replaces
ffmpeg's scrolling stats line with a progress bar.

ffpb's own flags go before a bare "--"; everything after it, or every
argument when there is no "--", belongs to ffmpeg:

	ffpb -i input.mkv -c:v libx264 output.mp4
	ffpb --ui plain -- -i input.mkv output.mp4

The first bare "--" is always taken as this separator. If ffmpeg itself
needs a "--" argument, start with an empty ffpb section:

	ffpb -- -i input.mkv -- odd-name.mp4`,
		Example:            "  ffpb -i in.mkv -c:v libx265 -crf 26 out.mkv",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:               runForward,
	}

	// Parsed by doctor, and by the root command only from the arguments before "--".
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())
	return root
}

// Execute runs the CLI on the process arguments.
func Execute(ctx context.Context) error {
	return execute(ctx, newRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.InitDefaultHelpCmd()
	if len(args) > 0 && !isSubcommand(root, args[0]) {
		// Every argument is ffmpeg's. Going through cobra's command lookup would
		// treat an output file named "doctor" as the doctor command.
		root.SetContext(ctx)
		return runForward(root, args)
	}
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func isSubcommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
