package cmdinput

import (
	"context"
	"fmt"
	"io"

	"lesiw.io/prefix"
)

// ParserName is the name a [Parser] registers under.
const ParserName = "gawk_cmd"

// An InputParser may take control of inputs opened by a [Host].
type InputParser interface {
	// Name identifies the parser.
	Name() string

	// CanTakeFile reports whether the parser wants in.
	// It must not modify in.
	CanTakeFile(in *Input) bool

	// TakeControlOf prepares in to be read through the parser.
	// If it returns an error, in must be left as it was.
	TakeControlOf(ctx context.Context, in *Input) error
}

// Parser replaces the contents of an input with the output of a command.
//
// The command line is built from the [CommandVar] template by substituting
// the input name for the first occurrence of the [PlaceholderVar] marker
// (see [BuildCommandLine]). It is run by the shell machine, typically
// sys.Shell(), which passes it to the system shell.
//
// The input name is not escaped. Whoever can set the template or name
// inputs can run arbitrary shell commands.
//
// A command that starts but fails right away cannot be told apart from
// one that produces no output when control is taken.
// Its exit status is reported when its output is read to the end.
type Parser struct {
	vars  *Vars
	shell Machine

	// Stderr receives the diagnostic output of commands.
	// It defaults to standard error, prefixed with the parser name.
	Stderr io.Writer
}

var _ InputParser = (*Parser)(nil)

// NewParser returns a Parser configured by vars that starts commands on
// shell. Each command is started as shell.Command(ctx, cmdline).
func NewParser(vars *Vars, shell Machine) *Parser {
	return &Parser{
		vars:   vars,
		shell:  shell,
		Stderr: prefix.NewWriter(ParserName+": ", stderr),
	}
}

// Name implements [InputParser].
func (p *Parser) Name() string { return ParserName }

// CanTakeFile reports whether a command template is configured and in is
// not standard input. Standard input is never taken over.
func (p *Parser) CanTakeFile(in *Input) bool {
	return p.vars.Lookup(CommandVar) != "" && in.Name != "-"
}

// TakeControlOf starts the command for in and redirects in to read its
// output. The original Source is restored when in is closed.
//
// The command runs under ctx until in is closed.
func (p *Parser) TakeControlOf(ctx context.Context, in *Input) error {
	tmpl := p.vars.Lookup(CommandVar)
	if tmpl == "" || in.Name == "-" {
		return ErrNotEligible
	}
	s := &session{
		cmdline: BuildCommandLine(
			tmpl, p.vars.Lookup(PlaceholderVar), in.Name,
		),
	}

	ctx, cancel := context.WithCancel(ctx)
	buf := p.shell.Command(ctx, s.cmdline)
	if buf == nil {
		cancel()
		return fmt.Errorf("%s: %w", s.cmdline, ErrNoStream)
	}
	Log(buf, p.Stderr)
	trace(buf)

	stream := newReader(buf, cancel)
	s.stream = stream
	if err := stream.Start(); err != nil {
		s.release()
		return fmt.Errorf("failed to start %q: %w", s.cmdline, err)
	}

	s.saved = in.Source
	in.Source = stream
	in.ReadFunc = stream.Read
	in.CloseFunc = p.close
	in.Opaque = s
	return nil
}

// close restores the original source of in and releases its session.
func (p *Parser) close(in *Input) error {
	s, ok := in.Opaque.(*session)
	if !ok || s.closed {
		return nil
	}
	in.Source = s.saved
	in.ReadFunc = nil
	in.Opaque = nil
	return s.release()
}

// session is the state of one input taken over by a Parser.
type session struct {
	cmdline string
	stream  io.ReadCloser
	saved   io.Reader
	closed  bool
}

// release closes the command stream, reclaiming its process.
func (s *session) release() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cmdline = ""
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	s.stream = nil
	return err
}
