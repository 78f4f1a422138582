// Package mock provides a Machine implementation for testing that tracks
// invocations and allows queuing responses.
//
// Every command started on a mock Machine is recorded in Calls, along with
// its environment, whether its output was read to the end, and whether it
// was closed.
//
// Responses are queued using Return() with optional argument patterns.
// A pattern matches any command that starts with it; the longest matching
// pattern wins. Responses for a pattern are used in order, and the last one
// repeats once the queue is exhausted.
//
//	m := new(mock.Machine)
//	m.Return(strings.NewReader("hello\n"), "sh", "-c", "echo hello")
//	m.Return(strings.NewReader(""), "sh")
//	m.Return(cmdinput.Fail(errors.New("no shell")))  // Default for all
//
// For behavior that depends on the arguments, register a handler with Do().
package mock

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"sync"

	"lesiw.io/cmdinput"
)

// Call represents a single command invocation captured by the mock Machine.
type Call struct {
	Args []string
	Env  map[string]string

	// Done is true once the command's output was read to the end.
	Done bool

	// Closed is true once the command's buffer was closed.
	Closed bool
}

type handler struct {
	args []string
	fn   func(context.Context, ...string) cmdinput.Buffer
}

type queue struct {
	readers []io.Reader
	last    []byte // output of the final reader, once read
	saved   bool
}

// Machine is a mock implementation of cmdinput.Machine.
// The zero value is ready to use.
type Machine struct {
	mu       sync.Mutex
	Calls    []Call
	handlers []handler
	queues   map[string]*queue
}

// Return queues reader as a response to commands starting with arg.
// With no arguments, reader becomes the default for all commands.
//
// If reader is a cmdinput.Buffer implementing StartBuffer, such as one
// returned by cmdinput.Fail, its Start method is used by the command.
func (m *Machine) Return(reader io.Reader, arg ...string) {
	m.mu.Lock()
	key := argsKey(arg)
	if m.queues == nil {
		m.queues = make(map[string]*queue)
	}
	q, ok := m.queues[key]
	if !ok {
		q = new(queue)
		m.queues[key] = q
	}
	if q.saved {
		q.readers, q.last, q.saved = nil, nil, false
	}
	q.readers = append(q.readers, reader)
	m.mu.Unlock()

	if !ok {
		m.Do(func(context.Context, ...string) cmdinput.Buffer {
			return m.next(q)
		}, arg...)
	}
}

// next returns the next response from q.
func (m *Machine) next(q *queue) cmdinput.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case len(q.readers) > 1:
		r := q.readers[0]
		q.readers = q.readers[1:]
		return r
	case q.saved:
		return bytes.NewReader(q.last)
	case len(q.readers) == 1:
		r := q.readers[0]
		if _, ok := r.(cmdinput.StartBuffer); ok {
			return r
		}
		return &teeBuffer{Reader: r, save: func(b []byte) {
			m.mu.Lock()
			defer m.mu.Unlock()
			q.last, q.saved = b, true
		}}
	}
	return bytes.NewReader(nil)
}

// teeBuffer remembers everything read through it so it can be replayed.
type teeBuffer struct {
	io.Reader
	buf  bytes.Buffer
	save func([]byte)
}

func (t *teeBuffer) Read(p []byte) (int, error) {
	n, err := t.Reader.Read(p)
	t.buf.Write(p[:n])
	if err == io.EOF && t.save != nil {
		t.save(bytes.Clone(t.buf.Bytes()))
		t.save = nil
	}
	return n, err
}

// Do registers fn to handle commands starting with arg.
// With no arguments, fn handles every command no other handler matches.
// Registering the same pattern again replaces its handler.
func (m *Machine) Do(
	fn func(context.Context, ...string) cmdinput.Buffer, arg ...string,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.handlers {
		if slices.Equal(m.handlers[i].args, arg) {
			m.handlers[i].fn = fn
			return
		}
	}
	m.handlers = append(m.handlers, handler{
		args: slices.Clone(arg),
		fn:   fn,
	})
}

// Command implements the cmdinput.Machine interface.
func (m *Machine) Command(
	ctx context.Context, args ...string,
) cmdinput.Buffer {
	if len(args) == 0 {
		return cmdinput.Fail(io.ErrUnexpectedEOF)
	}

	m.mu.Lock()
	var best *handler
	for i := range m.handlers {
		h := &m.handlers[i]
		if !hasPrefix(args, h.args) {
			continue
		}
		if best == nil || len(h.args) > len(best.args) {
			best = h
		}
	}
	m.Calls = append(m.Calls, Call{
		Args: slices.Clone(args),
		Env:  cmdinput.Envs(ctx),
	})
	c := &cmd{machine: m, index: len(m.Calls) - 1}
	m.mu.Unlock()

	if best != nil {
		c.buf = best.fn(ctx, args...)
	} else {
		c.buf = bytes.NewReader(nil)
	}
	return c
}

type cmd struct {
	machine *Machine
	index   int
	buf     cmdinput.Buffer
}

func (c *cmd) Read(p []byte) (int, error) {
	n, err := c.buf.Read(p)
	if err != nil {
		c.update(func(call *Call) { call.Done = true })
	}
	return n, err
}

func (c *cmd) Start() error { return cmdinput.Start(c.buf) }

func (c *cmd) Log(w io.Writer) { cmdinput.Log(c.buf, w) }

func (c *cmd) Close() error {
	c.update(func(call *Call) { call.Closed = true })
	if closer, ok := c.buf.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *cmd) String() string {
	return strings.Join(c.machine.call(c.index).Args, " ")
}

func (c *cmd) update(fn func(*Call)) {
	c.machine.mu.Lock()
	defer c.machine.mu.Unlock()
	fn(&c.machine.Calls[c.index])
}

func (m *Machine) call(i int) Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[i]
}

func hasPrefix(args, prefix []string) bool {
	return len(args) >= len(prefix) &&
		slices.Equal(args[:len(prefix)], prefix)
}

func argsKey(args []string) string {
	return strings.Join(args, "\x00")
}
