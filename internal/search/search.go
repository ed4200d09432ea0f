// Package search provides regex-based line filtering for the CLI's debug
// dump flags (--tokens, --ast, --symbols), narrowed from the reference
// toolchain's internal/runtime regex wrapper to the one operation a
// line-oriented text filter needs.
package search

import (
	"bufio"
	"io"
	"strings"

	"github.com/coregx/coregex"
)

// Matcher filters text to lines matching a compiled pattern.
type Matcher struct {
	re *coregex.Regexp
}

// Compile compiles pattern for use as a line filter.
func Compile(pattern string) (*Matcher, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// MatchString reports whether line matches the compiled pattern.
func (m *Matcher) MatchString(line string) bool {
	return m.re.MatchString(line)
}

// FilterLines copies from src to dst every line for which pattern matches,
// used by --grep to narrow --tokens/--ast/--symbols dumps.
func (m *Matcher) FilterLines(dst io.Writer, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var sb strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if m.MatchString(line) {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(dst, sb.String())
	return err
}
