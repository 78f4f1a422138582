package cmdinput

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a command that failed to launch or exited unsuccessfully.
type Error struct {
	// Log contains the captured diagnostic output, usually stderr.
	Log []byte

	// Err is the underlying error.
	Err error

	// Code is the exit code. A value of 0 does not indicate success.
	Code int
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(fmt.Sprintf("exit status %d", e.Code))
	}
	if len(e.Log) > 0 {
		sb.WriteString(
			"\n\t" +
				strings.TrimSuffix(
					strings.ReplaceAll(string(e.Log), "\n", "\n\t"),
					"\n\t",
				),
		)
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound returns true if err represents a command that failed to start,
// typically indicating the command was not found.
//
// An Error is considered "not found" when Err is non-nil and Code is 0.
//
// A command line run through a shell is found as long as the shell is.
// If the shell then cannot find the program, the shell exits with a status
// of its own and NotFound reports false.
func NotFound(err error) bool {
	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Err != nil && cmdErr.Code == 0
}
