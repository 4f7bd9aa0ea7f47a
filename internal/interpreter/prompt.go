package interpreter

import (
	"bytes"
	"fmt"
	"io"
)

const promptSuffix = "[y/N]"

type flusher interface {
	Flush() error
}

// readPrompt consumes the rest of an overwrite question, which ffmpeg leaves
// unterminated while it waits on stdin.
func (in *Interpreter) readPrompt() ([]byte, error) {
	var msg []byte
	for {
		chunk, err := in.cur.readUntil(PromptPending.delimiter())
		msg = append(msg, chunk...)
		if err != nil {
			return msg, err
		}
		if bytes.HasSuffix(msg, []byte(promptSuffix)) {
			return msg, nil
		}
	}
}

// relayPrompt shows the question to the user. ffmpeg is blocked reading the
// terminal it shares with us, so the text has to be out before we read again.
func relayPrompt(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("%w: %w", ErrPromptRelay, err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrPromptRelay, err)
		}
	}
	return nil
}
