package emit

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// writer accumulates indented C++ text.
type writer struct {
	sb    strings.Builder
	depth int
}

// line writes s as one indented line. An empty s writes a blank line.
func (w *writer) line(s string) {
	if s == "" {
		w.sb.WriteString("\n")
		return
	}
	w.sb.WriteString(strings.Repeat(indentUnit, w.depth))
	w.sb.WriteString(s)
	w.sb.WriteString("\n")
}

func (w *writer) linef(format string, args ...interface{}) {
	w.line(fmt.Sprintf(format, args...))
}

// raw writes text verbatim, adding a final newline when missing.
func (w *writer) raw(text string) {
	if text == "" {
		return
	}
	w.sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		w.sb.WriteString("\n")
	}
}

// directive writes a preprocessor line at column zero.
func (w *writer) directive(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
	w.sb.WriteString("\n")
}

// open writes head followed by a brace and indents.
func (w *writer) open(head string) {
	w.line(head + " {")
	w.depth++
}

func (w *writer) openf(format string, args ...interface{}) {
	w.open(fmt.Sprintf(format, args...))
}

// block opens a brace on its own line.
func (w *writer) block() {
	w.line("{")
	w.depth++
}

func (w *writer) close(suffix string) {
	if w.depth > 0 {
		w.depth--
	}
	w.line("}" + suffix)
}

// protect wraps fn in a preprocessor guard when guard is set.
func (w *writer) protect(guard string, fn func()) {
	if guard == "" {
		fn()
		return
	}
	w.directive("#if defined( %s )", guard)
	fn()
	w.directive("#endif  // %s", guard)
}

func (w *writer) String() string { return w.sb.String() }
