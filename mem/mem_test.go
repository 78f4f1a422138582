package mem

import (
	"errors"
	"io"
	"path"
	"strings"
	"testing"

	"lesiw.io/cmdinput"
	"lesiw.io/fs"
)

func writeFile(t *testing.T, m cmdinput.Machine, name, data string) {
	t.Helper()
	ctx, fsys := t.Context(), cmdinput.FS(m)
	if err := fs.MkdirAll(ctx, fsys, path.Dir(name)); err != nil {
		t.Fatalf("MkdirAll(%q) error = %v", path.Dir(name), err)
	}
	f, err := fs.Create(ctx, fsys, name)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	if _, err := io.WriteString(f, data); err != nil {
		t.Fatalf("WriteString(%q) error = %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%q) error = %v", name, err)
	}
}

func readAll(t *testing.T, buf cmdinput.Buffer) (string, error) {
	t.Helper()
	out, err := io.ReadAll(buf)
	if c, ok := buf.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			t.Errorf("Close() error = %v", cerr)
		}
	}
	return string(out), err
}

func TestCommandNotFound(t *testing.T) {
	buf := Machine().Command(t.Context(), "nonexistent-command-xyz")
	err := cmdinput.Start(buf)
	if err == nil {
		t.Fatal("Start() error = nil, want error")
	}
	if got, want := cmdinput.NotFound(err), true; got != want {
		t.Errorf("NotFound() = %v, want %v", got, want)
	}
}

func TestEcho(t *testing.T) {
	buf := Machine().Command(t.Context(), "echo", "hello", "world")
	out, err := readAll(t, buf)
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if got, want := out, "hello world\n"; got != want {
		t.Errorf("echo output = %q, want %q", got, want)
	}
}

func TestCat(t *testing.T) {
	m := Machine()
	writeFile(t, m, "/data/a.log", "one\n")
	writeFile(t, m, "/data/b.log", "two\n")

	out, err := readAll(t, m.Command(t.Context(),
		"cat", "/data/a.log", "/data/b.log",
	))
	if err != nil {
		t.Fatalf("cat failed: %v", err)
	}
	if got, want := out, "one\ntwo\n"; got != want {
		t.Errorf("cat output = %q, want %q", got, want)
	}
}

func TestCatMissingFile(t *testing.T) {
	buf := Machine().Command(t.Context(), "cat", "/missing")
	if err := cmdinput.Start(buf); err != nil {
		t.Errorf("Start() error = %v, want nil", err)
	}
	_, err := readAll(t, buf)
	var cmdErr *cmdinput.Error
	if !errors.As(err, &cmdErr) {
		t.Fatalf("cat error = %v, want *cmdinput.Error", err)
	}
	if got, want := cmdErr.Code, 1; got != want {
		t.Errorf("Code = %d, want %d", got, want)
	}
}

func TestGrep(t *testing.T) {
	m := Machine()
	writeFile(t, m, "/log/app.log", "INFO start\nERROR boom\nINFO stop\n")

	tests := []struct {
		name string
		args []string
		want string
		code int
	}{{
		name: "match",
		args: []string{"grep", "ERROR", "/log/app.log"},
		want: "ERROR boom\n",
	}, {
		name: "invert",
		args: []string{"grep", "-v", "ERROR", "/log/app.log"},
		want: "INFO start\nINFO stop\n",
	}, {
		name: "regexp",
		args: []string{"grep", "^INFO s(tart|top)$", "/log/app.log"},
		want: "INFO start\nINFO stop\n",
	}, {
		name: "no match",
		args: []string{"grep", "WARN", "/log/app.log"},
		code: 1,
	}, {
		name: "missing file",
		args: []string{"grep", "x", "/log/none.log"},
		code: 2,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := readAll(t, m.Command(t.Context(), tt.args...))
			if out != tt.want {
				t.Errorf("grep output = %q, want %q", out, tt.want)
			}
			code := 0
			if cmdErr := new(cmdinput.Error); errors.As(err, &cmdErr) {
				code = cmdErr.Code
			} else if err != nil {
				t.Fatalf("grep error = %v", err)
			}
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
		})
	}
}

func TestTrueFalse(t *testing.T) {
	m := Machine()
	if _, err := readAll(t, m.Command(t.Context(), "true")); err != nil {
		t.Errorf("true error = %v", err)
	}
	_, err := readAll(t, m.Command(t.Context(), "false"))
	if cmdErr := new(cmdinput.Error); !errors.As(err, &cmdErr) {
		t.Errorf("false error = %v, want *cmdinput.Error", err)
	} else if cmdErr.Code != 1 {
		t.Errorf("false exit code = %d, want 1", cmdErr.Code)
	}
}

func TestShell(t *testing.T) {
	m := Machine()
	writeFile(t, m, "/in/my file.txt", "a\nb\n")

	out, err := readAll(t, Shell(m).Command(t.Context(),
		`cat '/in/my file.txt'`,
	))
	if err != nil {
		t.Fatalf("sh failed: %v", err)
	}
	if got, want := out, "a\nb\n"; got != want {
		t.Errorf("sh output = %q, want %q", got, want)
	}
}

func TestShellCommandNotFound(t *testing.T) {
	var log strings.Builder
	buf := Shell(Machine()).Command(t.Context(), "frobnicate data.txt")
	cmdinput.Log(buf, &log)
	if err := cmdinput.Start(buf); err != nil {
		t.Fatalf("Start() error = %v, want nil", err)
	}
	out, err := readAll(t, buf)
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
	cmdErr := new(cmdinput.Error)
	if !errors.As(err, &cmdErr) || cmdErr.Code != 127 {
		t.Errorf("error = %v, want exit status 127", err)
	}
	if got, want := log.String(), "sh: frobnicate: not found\n"; got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestShellEmpty(t *testing.T) {
	out, err := readAll(t, Shell(Machine()).Command(t.Context(), "  "))
	if err != nil || out != "" {
		t.Errorf("sh empty = %q, %v; want empty, nil", out, err)
	}
}

func TestShellUnterminatedQuote(t *testing.T) {
	_, err := readAll(t, Shell(Machine()).Command(t.Context(), `cat 'x`))
	cmdErr := new(cmdinput.Error)
	if !errors.As(err, &cmdErr) || cmdErr.Code != 2 {
		t.Errorf("error = %v, want exit status 2", err)
	}
}

func TestString(t *testing.T) {
	buf := Shell(Machine()).Command(t.Context(), "grep foo data.txt")
	want := `sh -c 'grep foo data.txt'`
	if got := cmdinput.String(buf); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
