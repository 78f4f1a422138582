package mem

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"lesiw.io/cmdinput"
	"lesiw.io/fs"
)

func grepCommand(
	ctx context.Context, m *machine, args ...string,
) cmdinput.Buffer {
	rest := args[1:]
	invert := len(rest) > 0 && rest[0] == "-v"
	if invert {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return exited(ctx, "", &cmdinput.Error{
			Code: 2,
			Err:  fmt.Errorf("grep: no pattern given"),
		}, args...)
	}
	re, err := regexp.Compile(rest[0])
	if err != nil {
		return exited(ctx, "", &cmdinput.Error{
			Code: 2,
			Err:  fmt.Errorf("grep: %w", err),
		}, args...)
	}

	var out strings.Builder
	matched := false
	for _, path := range rest[1:] {
		f, err := fs.Open(ctx, m.FS(), path)
		if err != nil {
			return exited(ctx, out.String(), &cmdinput.Error{
				Code: 2,
				Err:  fmt.Errorf("grep: %s: %w", path, err),
			}, args...)
		}
		scn := bufio.NewScanner(f)
		for scn.Scan() {
			if re.MatchString(scn.Text()) != invert {
				out.WriteString(scn.Text() + "\n")
				matched = true
			}
		}
		_ = f.Close()
	}

	if !matched {
		return exited(ctx, "", &cmdinput.Error{Code: 1}, args...)
	}
	return exited(ctx, out.String(), nil, args...)
}
