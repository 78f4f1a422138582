// Package sh renders commands the way a POSIX shell would read them.
package sh

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var unsafe = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Stringer is a string that implements fmt.Stringer.
type Stringer string

func (s Stringer) String() string {
	return string(s)
}

// Quote quotes a string for safe use in shell commands.
func Quote(s string) string {
	if s == "" {
		return `''`
	}
	if !unsafe.MatchString(s) {
		return s
	}
	return `'` + strings.ReplaceAll(s, `'`, `'\''`) + `'`
}

// Join joins command arguments with proper shell quoting.
func Join(parts []string) string {
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = Quote(part)
	}
	return strings.Join(quoted, " ")
}

// String returns a shell command string with environment variables and
// arguments. Variables are listed in sorted order.
func String(env map[string]string, arg ...string) Stringer {
	var ret strings.Builder
	for _, k := range slices.Sorted(maps.Keys(env)) {
		ret.WriteString(k + "=" + Quote(env[k]) + " ")
	}
	ret.WriteString(Join(arg))
	return Stringer(ret.String())
}
