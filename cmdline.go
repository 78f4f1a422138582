package cmdinput

import "strings"

// BuildCommandLine substitutes name into template.
//
// The first occurrence of placeholder in template is replaced by name.
// Scanning resumes after the replaced span, so later occurrences of
// placeholder are copied literally, as is any copy of placeholder that
// name itself contains.
//
// If placeholder is empty or does not occur in template, a single space and
// name are appended to template instead. An empty template therefore yields
// " " + name.
//
// The result is not shell-escaped.
func BuildCommandLine(template, placeholder, name string) string {
	var b strings.Builder
	b.Grow(len(template) + len(name) + 1)

	replaced := false
	for i := 0; i < len(template); i++ {
		if !replaced && placeholder != "" &&
			strings.HasPrefix(template[i:], placeholder) {
			b.WriteString(name)
			i += len(placeholder) - 1
			replaced = true
			continue
		}
		b.WriteByte(template[i])
	}
	if !replaced {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	return b.String()
}
