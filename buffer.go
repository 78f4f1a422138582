package cmdinput

import "io"

// Buffer represents a command's execution.
// Buffers provide read access to command output.
// Reading drives execution and returns output until the command completes.
//
// Buffers may implement additional interfaces for extended capabilities:
//   - [LogBuffer] - capture diagnostic output
//   - [StartBuffer] - start eagerly and report launch failures
//   - [io.Closer] - abandon output and reclaim the process
type Buffer interface {
	// Read reads output from the command.
	// The command starts on first Read and completes at EOF.
	// Implementations must return EOF when the command terminates.
	io.Reader
}

// LogBuffer is an optional interface for buffers with diagnostic output.
type LogBuffer interface {
	Buffer

	// Log sets the destination for diagnostic output (stderr).
	// It must be called before the command starts.
	Log(io.Writer)
}

// StartBuffer is an optional interface for buffers that can be started
// before the first Read.
//
// Start reports whether the command could be launched at all.
// A command that launches and then fails is not a Start error;
// its failure is observed through Read.
type StartBuffer interface {
	Buffer

	// Start launches the command if it has not been launched yet.
	// Calling Start more than once returns the result of the first call.
	Start() error
}

// Log sets the log destination for buf if it implements [LogBuffer].
// Does nothing if buf does not implement LogBuffer.
func Log(buf Buffer, w io.Writer) {
	if l, ok := buf.(LogBuffer); ok {
		l.Log(w)
	}
}

// Start starts buf if it implements [StartBuffer].
// Returns nil if buf does not implement StartBuffer.
func Start(buf Buffer) error {
	if s, ok := buf.(StartBuffer); ok {
		return s.Start()
	}
	return nil
}
