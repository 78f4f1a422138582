package sys_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lesiw.io/cmdinput"
	"lesiw.io/cmdinput/sys"
)

func shellHost(
	t *testing.T, template string,
) (*cmdinput.Host, *cmdinput.Parser, string) {
	t.Helper()
	needShell(t)
	name := filepath.Join(t.TempDir(), "app.log")
	data := "keep one\nskip two\nkeep three\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	vars := cmdinput.NewVars()
	vars.Set(cmdinput.CommandVar, template)
	p := cmdinput.NewParser(vars, sys.Shell())
	h := cmdinput.NewHost(sys.FS())
	h.Register(p)
	return h, p, name
}

func TestParserOverShell(t *testing.T) {
	h, _, name := shellHost(t, "grep -v skip {}")
	in, err := h.Open(t.Context(), name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	out, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got, want := string(out), "keep one\nkeep three\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if err := in.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParserOverShellMissingProgram(t *testing.T) {
	h, p, name := shellHost(t, "cmdinput-no-such-program {}")
	var log strings.Builder
	p.Stderr = &log

	in, err := h.Open(t.Context(), name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	out, err := io.ReadAll(in)
	if len(out) != 0 {
		t.Errorf("output = %q, want empty", out)
	}
	var cmdErr *cmdinput.Error
	if !errors.As(err, &cmdErr) || cmdErr.Code != 127 {
		t.Errorf("ReadAll() error = %v, want exit status 127", err)
	}
	if !strings.Contains(log.String(), "cmdinput-no-such-program") {
		t.Errorf("stderr = %q, want missing program named", log.String())
	}
	if err := in.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParserCloseStopsCommand(t *testing.T) {
	h, _, name := shellHost(t, "cat {}; exec sleep 60")
	in, err := h.Open(t.Context(), name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	p := make([]byte, 4)
	if _, err := io.ReadFull(in, p); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if err := in.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if in.Source == nil {
		t.Error("Source = nil after Close, want original file")
	}
}

func TestParserHostCancelIsNotEOF(t *testing.T) {
	h, _, name := shellHost(t, "printf 'part\\n'; exec sleep 60 # {}")
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	in, err := h.Open(ctx, name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	p := make([]byte, len("part\n"))
	if _, err := io.ReadFull(in, p); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	cancel()

	rest, err := io.ReadAll(in)
	if len(rest) != 0 {
		t.Errorf("output after cancel = %q, want empty", rest)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadAll() error = %v, want context.Canceled", err)
	}
	var cmdErr *cmdinput.Error
	if !errors.As(err, &cmdErr) {
		t.Errorf("ReadAll() error = %v, want *cmdinput.Error", err)
	}
	if err := in.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
