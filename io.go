package cmdinput

import (
	"errors"
	"io"
	"os"

	"lesiw.io/prefix"
)

var (
	// Trace receives the command line of every command started by a Parser.
	Trace = io.Discard

	// ShTrace writes command lines the way sh -x does.
	// Assign it to Trace to follow commands on standard error.
	ShTrace = prefix.NewWriter("+ ", stderrWriter{})

	stderr io.Writer = os.Stderr
)

// stderrWriter writes to whatever stderr is at the time of the write.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return stderr.Write(p) }

// ErrClosed is returned when reading from a closed input or command.
var ErrClosed = errors.New("cmdinput: read from closed input")

// ErrNoStream is returned when a machine produces no output stream
// for a command.
var ErrNoStream = errors.New("cmdinput: command has no output stream")

// ErrNotEligible is returned by TakeControlOf for inputs that
// CanTakeFile rejects.
var ErrNotEligible = errors.New("cmdinput: input not eligible for takeover")
