// Package sys implements a cmdinput.Machine that executes commands
// on the local system using os/exec.
package sys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"lesiw.io/cmdinput"
	"lesiw.io/cmdinput/internal/sh"
	"lesiw.io/cmdinput/sub"
	"lesiw.io/fs"
	"lesiw.io/fs/osfs"
)

// Machine returns a cmdinput.Machine that executes commands
// on the local system.
func Machine() cmdinput.Machine { return machine{} }

// Shell returns a machine that runs each command line through the
// system shell: sh -c on Unix-like systems, cmd /c on Windows.
func Shell() cmdinput.Machine {
	if runtime.GOOS == "windows" {
		return sub.Machine(Machine(), "cmd", "/c")
	}
	return sub.Machine(Machine(), "sh", "-c")
}

// FS returns the local filesystem.
func FS() fs.FS { return osfs.New() }

type machine struct{}

var _ cmdinput.FSMachine = machine{}

func (machine) Command(ctx context.Context, arg ...string) cmdinput.Buffer {
	return newCmd(ctx, arg...)
}

func (machine) FS() fs.FS { return FS() }

type cmd struct {
	ctx context.Context
	cmd *exec.Cmd
	env map[string]string

	start func() error
	wait  func() error
	group errgroup.Group

	started bool
	reader  *io.PipeReader
	logger  io.Writer
	logbuf  bytes.Buffer
}

var (
	_ cmdinput.StartBuffer = (*cmd)(nil)
	_ cmdinput.LogBuffer   = (*cmd)(nil)
)

// cmdError wraps os/exec errors into cmdinput.Error.
// If err is an ExitError, uses its exit code.
// Otherwise, wraps the error with code 0 (e.g., for command not found).
func cmdError(err error) error {
	if err == nil {
		return nil
	}

	cmdErr := &cmdinput.Error{Err: err}
	if ee := new(exec.ExitError); errors.As(err, &ee) {
		cmdErr.Code = ee.ExitCode()
	}
	return cmdErr
}

func newCmd(ctx context.Context, args ...string) cmdinput.Buffer {
	if len(args) == 0 {
		return cmdinput.Fail(&cmdinput.Error{
			Err: fmt.Errorf("no command given"),
		})
	}

	c := new(cmd)
	c.ctx = ctx
	c.cmd = exec.CommandContext(ctx, args[0], args[1:]...)
	c.env = cmdinput.Envs(ctx)

	// Only absolute paths; relative paths are resolved by the filesystem.
	if dir := fs.WorkDir(ctx); dir != "" && filepath.IsAbs(dir) {
		c.cmd.Dir = dir
	}

	c.cmd.Env = os.Environ()
	for k, v := range c.env {
		c.cmd.Env = append(c.cmd.Env, k+"="+v)
	}

	c.start = sync.OnceValue(c.startFunc)
	c.wait = sync.OnceValue(c.waitFunc)

	return c
}

// Start launches the process. The command's stdin is the null device.
func (c *cmd) Start() error { return c.start() }

func (c *cmd) startFunc() error {
	r, w := io.Pipe()
	c.cmd.Stdout = w
	if c.logger == nil {
		c.cmd.Stderr = &c.logbuf
	} else {
		c.cmd.Stderr = c.logger
	}
	if err := c.cmd.Start(); err != nil {
		_ = w.Close()
		return cmdError(err)
	}
	c.reader = r
	c.started = true
	c.group.Go(func() error {
		err := c.cmd.Wait()
		_ = w.Close()
		return err
	})
	return nil
}

func (c *cmd) Read(p []byte) (int, error) {
	if err := c.start(); err != nil {
		return 0, err
	}
	n, err := c.reader.Read(p)
	if err == io.EOF {
		if werr := c.wait(); werr != nil {
			err = werr
		}
	}
	return n, err
}

// Close abandons unread output and reaps the process.
// The exit status is reported by Read at the end of output, not by Close,
// so a command stopped by Close is not an error.
func (c *cmd) Close() error {
	if !c.started {
		return nil
	}
	_ = c.reader.Close()
	_ = c.wait()
	return nil
}

func (c *cmd) Log(w io.Writer) {
	c.logger = w
}

func (c *cmd) waitFunc() error {
	err := c.group.Wait()
	if err == nil {
		return nil
	}
	cmdErr := cmdError(err)
	if ce, ok := cmdErr.(*cmdinput.Error); ok && c.logger == nil {
		ce.Log = c.logbuf.Bytes()
	}
	if ctxErr := c.ctx.Err(); ctxErr != nil {
		// Output was cut short; it must not read as complete.
		return fmt.Errorf("%w: %w", ctxErr, cmdErr)
	}
	return cmdErr
}

func (c *cmd) String() string {
	return sh.String(c.env, c.cmd.Args...).String()
}
