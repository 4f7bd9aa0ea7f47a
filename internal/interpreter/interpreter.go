// Package interpreter turns ffmpeg's diagnostic output into progress snapshots.
//
// ffmpeg writes a newline-terminated banner (inputs, durations, stream layouts)
// and then redraws a single stats line with carriage returns. It may also stop
// mid-banner to ask whether an existing output file should be overwritten. The
// interpreter follows those phases, reads with the matching delimiter, and feeds
// the extracted duration, frame rate and position into a State.
package interpreter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"ffpb/internal/logging"
	"ffpb/internal/progress"
)

// DefaultPollInterval is the pause before each steady-state read.
const DefaultPollInterval = 100 * time.Millisecond

// Options configures an Interpreter. Zero values select defaults.
type Options struct {
	Reporter     progress.Reporter // receives snapshots; defaults to progress.Discard
	Output       io.Writer         // where overwrite prompts are relayed; defaults to os.Stderr
	PollInterval time.Duration
	History      int // diagnostic lines kept for Tail; 0 keeps none
	Logger       *slog.Logger
	Now          func() time.Time
}

// Interpreter consumes one ffmpeg diagnostic stream. Its methods must not be
// called concurrently with Run.
type Interpreter struct {
	cur      *cursor
	reporter progress.Reporter
	output   io.Writer
	poll     time.Duration
	log      *slog.Logger
	now      func() time.Time

	phase     Phase
	state     State
	hist      *history
	finalSeen bool
}

// New returns an Interpreter reading from r.
func New(r io.Reader, opts Options) *Interpreter {
	in := &Interpreter{
		cur:      newCursor(r),
		reporter: opts.Reporter,
		output:   opts.Output,
		poll:     opts.PollInterval,
		log:      opts.Logger,
		now:      opts.Now,
		hist:     newHistory(opts.History),
	}
	if in.reporter == nil {
		in.reporter = progress.Discard{}
	}
	if in.output == nil {
		in.output = os.Stderr
	}
	if in.poll <= 0 {
		in.poll = DefaultPollInterval
	}
	if in.log == nil {
		in.log = logging.Discard()
	}
	if in.now == nil {
		in.now = time.Now
	}
	return in
}

// Run reads the stream until ffmpeg finishes or something goes wrong. A clean
// end of output after progress reporting began returns nil. The reporter's
// Finish is always called before Run returns.
func (in *Interpreter) Run(ctx context.Context) (err error) {
	defer func() {
		in.setPhase(Terminated)
		if err != nil {
			in.log.Error("interpreter stopped", "error", err)
		}
		in.reporter.Finish(err)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := in.step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// step performs one read-classify-apply iteration. done is true once the end
// marker has been read in steady state.
func (in *Interpreter) step(ctx context.Context) (done bool, err error) {
	var prefix []byte

	switch in.phase {
	case AwaitingHeader:
		b, err := in.cur.readExact(lookahead)
		if err != nil {
			in.hist.add(string(b))
			return false, in.endOfStream(err)
		}
		switch phaseForPrefix(b) {
		case PromptPending:
			if err := in.relay(); err != nil {
				return false, err
			}
		case SteadyState:
			in.begin()
			prefix = b
		default:
			prefix = b
		}
	case SteadyState:
		if err := in.sleep(ctx); err != nil {
			return false, err
		}
	}

	chunk, err := in.cur.readUntil(in.phase.delimiter())
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	line := decode(prefix, chunk)

	in.hist.add(line)
	out, changed, err := Classify(line, &in.state)
	if err != nil {
		return false, err
	}
	if out.Has(StreamEnd) {
		if in.phase != SteadyState {
			return false, ErrUnexpectedEOF
		}
		return true, nil
	}
	if out != Unrecognized {
		in.log.Debug("classified output", "outcome", out.String(), "phase", in.phase.String())
	}
	if out.Has(DurationMetadata) {
		in.log.Debug("duration learned", "seconds", in.state.total)
	}
	if out.Has(FPSMetadata) {
		in.log.Debug("frame rate learned", "fps", in.state.fps)
	}
	if changed {
		snap := in.push()
		if out.Has(ProgressUpdate) && snap.Complete() && !in.finalSeen {
			in.finalSeen = true
			in.reporter.Log(progress.Log{Line: strings.TrimSpace(line)})
		}
	}
	return false, nil
}

// relay handles the overwrite question and moves on to steady state.
func (in *Interpreter) relay() error {
	in.setPhase(PromptPending)
	msg, err := in.readPrompt()
	text := string(promptMarker) + string(msg)
	in.hist.add(text)
	if err != nil {
		return in.endOfStream(err)
	}
	in.log.Info("relaying overwrite prompt", "prompt", text)
	if err := relayPrompt(in.output, text+" "); err != nil {
		return err
	}
	in.begin()
	return nil
}

// begin switches to carriage-return framing and tells the renderer.
func (in *Interpreter) begin() {
	in.setPhase(SteadyState)
	if in.state.Start() {
		in.push()
	}
}

func (in *Interpreter) setPhase(p Phase) {
	if in.phase == p {
		return
	}
	in.log.Debug("phase transition", "from", in.phase.String(), "to", p.String())
	in.phase = p
}

func (in *Interpreter) push() progress.Snapshot {
	snap := in.state.Snapshot(in.now())
	in.reporter.Update(snap)
	return snap
}

func (in *Interpreter) sleep(ctx context.Context) error {
	t := time.NewTimer(in.poll)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// endOfStream maps a cursor error seen before steady state.
func (in *Interpreter) endOfStream(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrUnexpectedEOF
	}
	return err
}

// Snapshot returns the current progress state.
func (in *Interpreter) Snapshot() progress.Snapshot {
	return in.state.Snapshot(in.now())
}

// Phase returns the current phase.
func (in *Interpreter) Phase() Phase {
	return in.phase
}

// Tail returns the most recent diagnostic lines, oldest first.
func (in *Interpreter) Tail() []string {
	return in.hist.lines()
}

// Drain discards the rest of the stream so the child never blocks on a full pipe.
func (in *Interpreter) Drain() error {
	return in.cur.drain()
}

func decode(prefix, chunk []byte) string {
	s := string(prefix) + string(chunk)
	return strings.ToValidUTF8(s, "\uFFFD")
}
