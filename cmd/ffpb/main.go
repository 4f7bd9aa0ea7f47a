package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	ffpbcmd "ffpb/internal/cli/cmd"
)

func main() {
	// ffmpeg shares our process group and gets the same Ctrl+C; we only need
	// to stop reading and wait for it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ffpbcmd.Execute(ctx); err != nil {
		var ee *ffpbcmd.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, "ffpb:", ee.Err)
			}
			os.Exit(ee.Code)
		}
		fmt.Fprintln(os.Stderr, "ffpb:", err)
		os.Exit(ffpbcmd.ExitCLIError)
	}
	os.Exit(ffpbcmd.ExitOK)
}
