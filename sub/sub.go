// Package sub implements a cmdinput.Machine that prefixes all commands
// with a fixed set of arguments.
//
// It is how a shell is put in front of a machine:
//
//	shell := sub.Machine(sys.Machine(), "sh", "-c")
//	shell.Command(ctx, "grep foo data.txt") // sh -c 'grep foo data.txt'
package sub

import (
	"context"
	"slices"

	"lesiw.io/cmdinput"
	"lesiw.io/fs"
)

// Machine returns a cmdinput.Machine that prefixes all commands with the
// given prefix arguments, using the provided machine for execution.
func Machine(m cmdinput.Machine, prefix ...string) cmdinput.Machine {
	return &machine{m: m, prefix: slices.Clone(prefix)}
}

type machine struct {
	m      cmdinput.Machine
	prefix []string
}

func (m *machine) Command(
	ctx context.Context, arg ...string,
) cmdinput.Buffer {
	args := make([]string, 0, len(m.prefix)+len(arg))
	args = append(args, m.prefix...)
	args = append(args, arg...)
	return m.m.Command(ctx, args...)
}

// FS returns the filesystem of the underlying machine, if any.
func (m *machine) FS() fs.FS { return cmdinput.FS(m.m) }
