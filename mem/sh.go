package mem

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/anmitsu/go-shlex"

	"lesiw.io/cmdinput"
	"lesiw.io/cmdinput/internal/sh"
)

// script is a command run by sh -c.
type script struct {
	buf  cmdinput.Buffer
	name string
	log  io.Writer
	sh.Stringer
}

func shCommand(
	ctx context.Context, m *machine, args ...string,
) cmdinput.Buffer {
	if len(args) < 3 || args[1] != "-c" {
		return exited(ctx, "", &cmdinput.Error{
			Code: 2,
			Err:  errors.New("sh: usage: sh -c command"),
		}, args...)
	}
	words, err := shlex.Split(args[2], true)
	if err != nil {
		return exited(ctx, "", &cmdinput.Error{
			Code: 2,
			Err:  fmt.Errorf("sh: %w", err),
		}, args...)
	}
	s := &script{Stringer: sh.String(cmdinput.Envs(ctx), args...)}
	if len(words) == 0 {
		s.buf = exited(ctx, "", nil)
		return s
	}
	s.name = words[0]
	s.buf = m.Command(ctx, words...)
	return s
}

// Start reports that the shell itself started.
// Whether the command it runs exists is only known once it is read.
func (s *script) Start() error { return nil }

func (s *script) Read(p []byte) (int, error) {
	n, err := s.buf.Read(p)
	if err != nil && err != io.EOF && cmdinput.NotFound(err) {
		if s.log != nil {
			_, _ = fmt.Fprintf(s.log, "sh: %s: not found\n", s.name)
		}
		err = &cmdinput.Error{Code: 127, Err: err}
	}
	return n, err
}

func (s *script) Log(w io.Writer) {
	s.log = w
	cmdinput.Log(s.buf, w)
}

func (s *script) Close() error {
	if c, ok := s.buf.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
