package interpreter

import "bytes"

// Phase is where the interpreter is in ffmpeg's output lifecycle.
type Phase int

const (
	// AwaitingHeader reads the newline-terminated startup banner.
	AwaitingHeader Phase = iota
	// PromptPending assembles an overwrite confirmation question.
	PromptPending
	// SteadyState reads carriage-return terminated stats lines.
	SteadyState
	// Terminated is final.
	Terminated
)

func (p Phase) String() string {
	switch p {
	case AwaitingHeader:
		return "awaiting-header"
	case PromptPending:
		return "prompt-pending"
	case SteadyState:
		return "steady-state"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// delimiter is the byte that ends a record in this phase.
func (p Phase) delimiter() byte {
	switch p {
	case PromptPending:
		return ']'
	case SteadyState:
		return '\r'
	default:
		return '\n'
	}
}

// lookahead is how many bytes are read at the start of every header line
// before deciding how to read the rest of it.
const lookahead = 5

var (
	// File 'out.mp4' already exists. Overwrite? [y/N]
	promptMarker = []byte("File ")
	// Press [q] to stop, [?] for help
	startMarker = []byte("Press")
)

// phaseForPrefix decides the next phase from a header line's first bytes.
func phaseForPrefix(prefix []byte) Phase {
	switch {
	case bytes.Equal(prefix, promptMarker):
		return PromptPending
	case bytes.Equal(prefix, startMarker):
		return SteadyState
	default:
		return AwaitingHeader
	}
}
