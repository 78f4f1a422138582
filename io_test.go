package cmdinput

import (
	"io"
	"testing"
)

func closeOnCleanup(t *testing.T, c io.Closer) {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("cleanup Close() failed: %v", err)
		}
	})
}

// closeTracker tracks whether Close() has been called.
type closeTracker bool

func (*closeTracker) Read(p []byte) (int, error) { return 0, io.EOF }
func (c *closeTracker) Close() error {
	*c = true
	return nil
}

// startTracker counts Start() calls and fails them with err.
type startTracker struct {
	closeTracker
	starts int
	err    error
}

func (s *startTracker) Start() error {
	s.starts++
	return s.err
}
