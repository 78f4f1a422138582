package cmdinput

import (
	"context"
	"fmt"
	"io"
	"os"

	"lesiw.io/fs"
)

// Host opens named inputs, letting registered parsers take them over.
//
// A Host is not safe for concurrent use.
type Host struct {
	fsys    fs.FS
	parsers []InputParser

	// Stdin is the stream opened for the name "-".
	Stdin io.Reader
}

// NewHost returns a Host that opens inputs from fsys.
func NewHost(fsys fs.FS) *Host {
	return &Host{fsys: fsys, Stdin: os.Stdin}
}

// Register adds p to the parsers consulted by Open.
// Parsers are consulted in registration order.
func (h *Host) Register(p InputParser) {
	h.parsers = append(h.parsers, p)
}

// Open opens the input called name.
//
// The input is first opened normally. Each registered parser is then asked
// whether it can take the input; the first that can is given control.
// If taking control fails, the input is read normally.
//
// A name that cannot be opened normally can still be taken over by a
// parser. Open only fails if neither works.
func (h *Host) Open(ctx context.Context, name string) (*Input, error) {
	in := &Input{Name: name}

	var openErr error
	if name == "-" {
		in.Source = io.NopCloser(h.Stdin)
	} else if f, err := fs.Open(ctx, h.fsys, name); err != nil {
		openErr = err
	} else {
		in.Source = f
	}

	for _, p := range h.parsers {
		if !p.CanTakeFile(in) {
			continue
		}
		err := p.TakeControlOf(ctx, in)
		if err == nil {
			return in, nil
		}
		_, _ = fmt.Fprintf(Trace, "%s: %s: %v\n", p.Name(), name, err)
		break
	}

	if openErr != nil {
		return nil, openErr
	}
	return in, nil
}
