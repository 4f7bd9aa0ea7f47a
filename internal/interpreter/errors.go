package interpreter

import "errors"

var (
	// ErrUnexpectedEOF means ffmpeg closed its output before it started
	// reporting progress.
	ErrUnexpectedEOF = errors.New("ffmpeg output ended unexpectedly")
	// ErrRead wraps I/O failures on the diagnostic stream.
	ErrRead = errors.New("read ffmpeg output")
	// ErrMalformedMetric means a recognized field could not be parsed as a number.
	ErrMalformedMetric = errors.New("malformed metric")
	// ErrPromptRelay means the overwrite prompt could not be shown to the user.
	ErrPromptRelay = errors.New("relay prompt")
)
