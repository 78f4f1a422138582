// Package mem provides an in-memory cmdinput.Machine for tests and examples.
//
// The machine provides small implementations of common commands operating
// on an in-memory filesystem:
//
//   - sh -c LINE - splits LINE into words and runs them as one command
//   - cat FILE... - concatenates files
//   - echo ARG... - prints its arguments
//   - grep [-v] PATTERN FILE... - prints lines matching a regular expression
//   - true, false - exit with status 0 and 1
//
// The shell understands quoting but not pipes, redirection or expansion.
// Like a real shell, it starts even when the command it is asked to run
// does not exist; the failure is reported with status 127 when its output
// is read.
//
// # Guarantees
//
//   - Filesystem starts empty (no files or directories)
//   - Platform-independent behavior on all hosts
package mem

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lesiw.io/cmdinput"
	"lesiw.io/cmdinput/internal/sh"
	"lesiw.io/cmdinput/sub"
	"lesiw.io/fs"
	"lesiw.io/fs/memfs"
)

// Machine returns a new in-memory command machine.
func Machine() cmdinput.Machine { return &machine{memfs.New()} }

// Shell returns a machine that runs each command line through the sh
// command of m.
func Shell(m cmdinput.Machine) cmdinput.Machine {
	return sub.Machine(m, "sh", "-c")
}

type fsys = fs.FS
type machine struct{ fsys }

func (m *machine) FS() fs.FS { return m.fsys }

func (m *machine) Command(
	ctx context.Context, arg ...string,
) cmdinput.Buffer {
	if len(arg) == 0 {
		return cmdinput.Fail(&cmdinput.Error{
			Err: fmt.Errorf("bad command: no command given"),
		})
	}
	switch arg[0] {
	case "sh":
		return shCommand(ctx, m, arg...)
	case "cat":
		return catCommand(ctx, m, arg...)
	case "echo":
		return echoCommand(ctx, arg...)
	case "grep":
		return grepCommand(ctx, m, arg...)
	case "true":
		return exitCommand(ctx, 0, arg...)
	case "false":
		return exitCommand(ctx, 1, arg...)
	default:
		return cmdinput.Fail(&cmdinput.Error{
			Err: fmt.Errorf("command not found: %s", arg[0]),
		})
	}
}

// exit is the buffer of a command that produced its output and exited.
type exit struct {
	io.Reader
	sh.Stringer
	err error
}

func (e *exit) Read(p []byte) (int, error) {
	n, err := e.Reader.Read(p)
	if err == io.EOF && e.err != nil {
		err = e.err
	}
	return n, err
}

func exited(
	ctx context.Context, out string, err error, args ...string,
) cmdinput.Buffer {
	return &exit{
		Reader:   strings.NewReader(out),
		Stringer: sh.String(cmdinput.Envs(ctx), args...),
		err:      err,
	}
}

func exitCommand(
	ctx context.Context, code int, args ...string,
) cmdinput.Buffer {
	var err error
	if code != 0 {
		err = &cmdinput.Error{Code: code}
	}
	return exited(ctx, "", err, args...)
}

func echoCommand(ctx context.Context, args ...string) cmdinput.Buffer {
	return exited(ctx, strings.Join(args[1:], " ")+"\n", nil, args...)
}
