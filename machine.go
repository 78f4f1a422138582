package cmdinput

import (
	"context"
	"fmt"
	"strings"

	"lesiw.io/fs"
)

// A Machine starts commands.
//
// Machines may implement [FSMachine] to expose the filesystem their
// commands see.
type Machine interface {
	// Command instantiates a command with the given context and arguments.
	// Environment variables are extracted from ctx using Envs.
	// The returned Buffer represents the command's execution.
	// Reading to EOF drives command execution to completion.
	Command(ctx context.Context, arg ...string) Buffer
}

// FSMachine is an optional interface for machines that provide a filesystem.
type FSMachine interface {
	Machine

	// FS returns a fs.FS for this Machine.
	FS() fs.FS
}

// FS returns the filesystem of m if it implements [FSMachine].
// Otherwise, FS returns nil.
func FS(m Machine) fs.FS {
	if fm, ok := m.(FSMachine); ok {
		return fm.FS()
	}
	return nil
}

// MachineFunc is an adapter to allow ordinary functions to be used as
// Machines. This is similar to http.HandlerFunc.
type MachineFunc func(context.Context, ...string) Buffer

// Command implements the Machine interface.
func (f MachineFunc) Command(ctx context.Context, args ...string) Buffer {
	return f(ctx, args...)
}

// String describes buf, usually as the command line that started it.
// Buffers that do not implement [fmt.Stringer] are described by their type.
func String(buf Buffer) string {
	if s, ok := buf.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("<%T>", buf)
}

// trace writes the command line of buf to Trace.
func trace(buf Buffer) {
	if s := strings.TrimRight(String(buf), "\n"); s != "" {
		_, _ = fmt.Fprintln(Trace, s)
	}
}
