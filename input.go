package cmdinput

import (
	"errors"
	"io"
)

// Input is a named input opened by a host.
//
// The host fills in Name and Source. A parser that takes control of the
// input may replace Source and install ReadFunc, CloseFunc and Opaque.
type Input struct {
	// Name is the logical name of the input, usually a path.
	// The name "-" denotes standard input.
	Name string

	// Source is the stream the input is read from.
	Source io.Reader

	// ReadFunc, if set, is used by Read instead of Source.Read.
	ReadFunc func(p []byte) (int, error)

	// CloseFunc, if set, is called once by Close
	// before Source is closed.
	CloseFunc func(*Input) error

	// Opaque holds state owned by the parser that set CloseFunc.
	Opaque any

	closed bool
}

// Read reads from the input.
func (in *Input) Read(p []byte) (int, error) {
	if in.closed {
		return 0, ErrClosed
	}
	if in.ReadFunc != nil {
		return in.ReadFunc(p)
	}
	if in.Source == nil {
		return 0, io.EOF
	}
	return in.Source.Read(p)
}

// Close runs CloseFunc, then closes Source if it is an [io.Closer].
// Subsequent calls do nothing.
func (in *Input) Close() error {
	if in.closed {
		return nil
	}
	in.closed = true

	var err error
	if in.CloseFunc != nil {
		err = in.CloseFunc(in)
	}
	if c, ok := in.Source.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
