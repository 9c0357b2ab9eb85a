package gen

import (
	"fmt"
	"strings"
)

// indentStep is one indentation level in emitted text.
const indentStep = "    "

// CodeWriter accumulates emitted source text line by line with explicit
// indentation control. Each Generate call allocates a fresh writer, so
// concurrent generations never share a buffer.
type CodeWriter struct {
	b      strings.Builder
	indent int
}

// NewCodeWriter returns an empty writer at indentation level zero.
func NewCodeWriter() *CodeWriter {
	return &CodeWriter{}
}

// Indent increases the indentation by one step.
func (w *CodeWriter) Indent() {
	w.indent++
}

// Unindent decreases the indentation by one step.
func (w *CodeWriter) Unindent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Line writes one indented line. An empty string writes a bare newline
// with no trailing indentation.
func (w *CodeWriter) Line(s string) {
	if s != "" {
		for i := 0; i < w.indent; i++ {
			w.b.WriteString(indentStep)
		}
		w.b.WriteString(s)
	}
	w.b.WriteByte('\n')
}

// Linef writes one indented formatted line.
func (w *CodeWriter) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank writes one separator line.
func (w *CodeWriter) Blank() {
	w.Line("")
}

// String returns the accumulated text.
func (w *CodeWriter) String() string {
	return w.b.String()
}
