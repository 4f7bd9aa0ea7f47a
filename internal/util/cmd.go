package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrPipe means the child's stderr could not be captured.
var ErrPipe = errors.New("capture stderr")

// DefaultGracePeriod is how long a cancelled child gets after SIGINT before it is killed.
const DefaultGracePeriod = 5 * time.Second

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path    string   // Binary path
	Args    []string // Arguments, passed through untouched
	Verbose bool     // Print the command line before starting it

	// Run only:
	StdoutLine    func(string) // Called for each stdout line (if non-nil)
	CaptureStdout bool         // When false, do not buffer stdout into CmdResult (still invoke StdoutLine)

	// Start only; nil inherits ours. ffmpeg reads its overwrite answer from
	// stdin and may write media to stdout ("-f mp4 -"), so both default to the
	// real streams.
	Stdin  io.Reader
	Stdout io.Writer
	Echo   io.Writer // where Verbose prints; nil means os.Stderr
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// Process is a started child whose stderr is read by the caller.
type Process interface {
	// Stderr is the child's diagnostic stream. It must be read to EOF before Wait.
	Stderr() io.Reader
	// Wait returns the exit code; -1 when the child did not exit normally.
	Wait() (int, error)
}

// CmdRunner starts subprocesses. Tests substitute a fake.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
	Start(ctx context.Context, spec CmdSpec) (Process, error)
}

// DefaultRunner runs real processes with os/exec.
type DefaultRunner struct {
	GracePeriod time.Duration
}

// NewDefaultRunner returns a runner that interrupts cancelled children and
// kills them after DefaultGracePeriod.
func NewDefaultRunner() *DefaultRunner {
	return &DefaultRunner{GracePeriod: DefaultGracePeriod}
}

// Run is the package-level Run.
func (r *DefaultRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	return Run(ctx, spec)
}

// Start launches spec with stdin and stdout attached and stderr piped back.
func (r *DefaultRunner) Start(ctx context.Context, spec CmdSpec) (Process, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Stdin = spec.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	// ffmpeg finishes the output file on SIGINT; kill only if it ignores us.
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = r.GracePeriod

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipe, err)
	}

	if spec.Verbose {
		echo(spec)
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &process{cmd: cmd, stderr: stderr}, nil
}

type process struct {
	cmd    *exec.Cmd
	stderr io.Reader
}

func (p *process) Stderr() io.Reader { return p.stderr }

func (p *process) Wait() (int, error) {
	err := p.cmd.Wait()
	return exitCode(err), err
}

// Run executes the command to completion, capturing its output. It always
// captures stderr. Stdout capture can be disabled with CaptureStdout=false.
// On non-zero exit, returns an error describing the exit code, while also
// populating CmdResult.Code and captured buffers.
func Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	if spec.Verbose {
		echo(spec)
	}
	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanLines(stdoutPipe, func(line string) {
			if spec.StdoutLine != nil {
				spec.StdoutLine(line)
			}
			if spec.CaptureStdout || spec.StdoutLine == nil {
				stdoutBuf.WriteString(line)
				stdoutBuf.WriteByte('\n')
			}
		})
	}()
	go func() {
		defer wg.Done()
		scanLines(stderrPipe, func(line string) {
			stderrBuf.WriteString(line)
			stderrBuf.WriteByte('\n')
		})
	}()

	// Wait closes the pipes, so the readers have to finish first.
	wg.Wait()
	waitErr := cmd.Wait()
	code := exitCode(waitErr)

	res := CmdResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
		Code:   code,
		Err:    waitErr,
	}
	if waitErr != nil {
		return res, fmt.Errorf("command failed (exit %d): %w", code, waitErr)
	}
	return res, nil
}

func scanLines(r io.Reader, fn func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fn(sc.Text())
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func echo(spec CmdSpec) {
	w := spec.Echo
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "+ %s\n", ShellQuote(spec.Path, spec.Args))
}

// ShellQuote returns a printable shell-like command string for logging.
func ShellQuote(path string, args []string) string {
	b := &strings.Builder{}
	b.WriteString(quote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	// Wrap in single quotes and escape existing single quotes.
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!") {
		return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
	}
	return s
}
