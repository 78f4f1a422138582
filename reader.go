package cmdinput

import (
	"context"
	"io"
	"sync"
)

type reader struct {
	sync.Mutex
	buf     Buffer
	cancel  context.CancelFunc
	started bool
	closed  bool
}

func (r *reader) Start() error {
	r.Lock()
	if r.closed {
		r.Unlock()
		return ErrClosed
	}
	r.started = true
	r.Unlock()

	return Start(r.buf)
}

func (r *reader) Read(p []byte) (int, error) {
	r.Lock()
	if r.closed {
		r.Unlock()
		return 0, ErrClosed
	}
	r.started = true
	r.Unlock()

	return r.buf.Read(p)
}

func (r *reader) Close() error {
	r.Lock()
	if r.closed {
		r.Unlock()
		return nil
	}
	r.closed = true
	started := r.started
	r.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	if started {
		if closer, ok := r.buf.(io.Closer); ok {
			return closer.Close()
		}
	}

	return nil
}

func (r *reader) String() string { return String(r.buf) }

// NewReader creates a read-only command that stops on Close.
//
// The command starts lazily on the first Read, or eagerly when the
// returned reader's Start method is called (see [StartBuffer]).
// Close cancels the command's context and, if the command started,
// closes its buffer so the process is reclaimed.
//
// If Close is called before the command starts, it never starts.
func NewReader(ctx context.Context, m Machine, args ...string) io.ReadCloser {
	ctx, cancel := context.WithCancel(ctx)
	return newReader(m.Command(ctx, args...), cancel)
}

func newReader(buf Buffer, cancel context.CancelFunc) *reader {
	return &reader{buf: buf, cancel: cancel}
}
