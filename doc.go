// Package cmdinput substitutes the output of a shell command for the
// contents of an input file.
//
// When the command template variable [CommandVar] (GCMD) is set, every
// input opened through a [Host] is handed to a [Parser], which runs the
// template with the input's name substituted in and lets the program read
// the command's output instead of the file:
//
//	GCMD='grep ERROR {}'  # reading app.log reads `grep ERROR app.log`
//	GCMD='unzip -p'       # reading a.zip reads `unzip -p a.zip`
//
// The first occurrence of the placeholder [PlaceholderVar] (GCRS, default
// "{}") is replaced by the name. If the template has no placeholder, the
// name is appended after a space. [BuildCommandLine] does the substitution.
// Standard input, named "-", is never taken over.
//
// Variables are held in [Vars]. They are read each time an input is opened,
// so changing them between inputs changes how later inputs are read.
// [Vars.LoadEnv] seeds them from the environment carried by ctx
// (see [WithEnv]).
//
// # Inputs
//
// An [Input] is an open, named stream. A parser that takes control of an
// Input swaps its Source for the command output and installs a close hook.
// Closing the Input reclaims the command and puts the original Source back.
// Closing twice is harmless.
//
// If the command cannot be started, the Input is left alone and the
// [Host] reads the file normally. A command that starts and then fails is
// only noticed when its output is read to the end: the final Read returns
// an [*Error] with the exit status and the failure goes to the parser's
// Stderr.
//
// Input names are handed to the shell unescaped. A name like
// "x; rm -rf ~" runs whatever follows the semicolon. Only use the parser
// where whoever names the inputs is trusted to run commands.
//
// # Machines
//
// Commands are started by a [Machine], which returns a [Buffer]: an
// [io.Reader] over the command's standard output. Buffers may also
// implement [LogBuffer] to redirect diagnostics, [StartBuffer] to launch
// before the first Read, and [io.Closer] to abandon their output.
// [NewReader] wraps a Buffer in an [io.ReadCloser].
//
// Environment variables are part of the [context.Context].
// They can be set using [WithEnv] and inspected using [Envs].
//
// Machines provided by this module:
//   - [lesiw.io/cmdinput/sys] - executes commands on the local system
//   - [lesiw.io/cmdinput/mem] - in-memory Machine for examples and tests
//   - [lesiw.io/cmdinput/sub] - prefixes commands with fixed arguments
//   - [lesiw.io/cmdinput/mock] - mock Machine for testing
//
// A typical program wires them together like this:
//
//	vars := cmdinput.NewVars()
//	vars.LoadEnv(ctx)
//	host := cmdinput.NewHost(sys.FS())
//	host.Register(cmdinput.NewParser(vars, sys.Shell()))
//	in, err := host.Open(ctx, "app.log")
//	if err != nil {
//	    return err
//	}
//	defer in.Close()
//
// Set [Trace] to see each command line as it is started; [ShTrace] prints
// them the way sh -x does.
package cmdinput
