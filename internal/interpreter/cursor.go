package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// cursor reads delimiter-terminated chunks from the diagnostic stream.
// Bytes it returns are consumed; there is no pushback.
type cursor struct {
	r *bufio.Reader
}

func newCursor(r io.Reader) *cursor {
	return &cursor{r: bufio.NewReader(r)}
}

// readUntil returns everything up to and including delim. A stream that ends
// before delim yields the partial chunk with a nil error; io.EOF is returned
// only when nothing was left to read.
func (c *cursor) readUntil(delim byte) ([]byte, error) {
	b, err := c.r.ReadBytes(delim)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, io.EOF):
		if len(b) == 0 {
			return nil, io.EOF
		}
		return b, nil
	default:
		return b, fmt.Errorf("%w: %w", ErrRead, err)
	}
}

// readExact reads exactly n bytes. A short stream returns what was read
// together with io.EOF.
func (c *cursor) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	k, err := io.ReadFull(c.r, buf)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:k], io.EOF
	default:
		return buf[:k], fmt.Errorf("%w: %w", ErrRead, err)
	}
}

// drain discards whatever remains on the stream.
func (c *cursor) drain() error {
	_, err := io.Copy(io.Discard, c.r)
	return err
}
