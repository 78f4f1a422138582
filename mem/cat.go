package mem

import (
	"context"
	"errors"
	"fmt"
	"io"

	"lesiw.io/cmdinput"
	"lesiw.io/cmdinput/internal/sh"
	"lesiw.io/fs"
)

type catCmd struct {
	io.Reader
	sh.Stringer
	files []io.Closer
}

func (c *catCmd) Close() error {
	var err error
	for _, f := range c.files {
		err = errors.Join(err, f.Close())
	}
	c.files = nil
	return err
}

func catCommand(
	ctx context.Context, m *machine, args ...string,
) cmdinput.Buffer {
	c := &catCmd{Stringer: sh.String(cmdinput.Envs(ctx), args...)}
	readers := make([]io.Reader, 0, len(args)-1)
	for _, path := range args[1:] {
		f, err := fs.Open(ctx, m.FS(), path)
		if err != nil {
			_ = c.Close()
			return exited(ctx, "", &cmdinput.Error{
				Code: 1,
				Err:  fmt.Errorf("cat: %s: %w", path, err),
			}, args...)
		}
		readers = append(readers, f)
		c.files = append(c.files, f)
	}
	c.Reader = io.MultiReader(readers...)
	return c
}
