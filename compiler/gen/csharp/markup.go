package csharp

import (
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
)

// attributeSuffix is the conventional qualifier stripped from marker
// names before rendering ("RequiredAttribute" renders as "[Required]").
const attributeSuffix = "Attribute"

// MarkupBuilder builds one declarative markup line: a marker name plus an
// ordered parameter list, rendered as [Name] or [Name(p1, p2)]. A builder
// is a transient value: populate it, render it, discard it.
type MarkupBuilder struct {
	name   string
	params []string
}

// NewMarkupBuilder creates a builder for the given marker name.
func NewMarkupBuilder(name string) (*MarkupBuilder, error) {
	if name == "" {
		return nil, gen.NewArgumentError("name", "marker name cannot be empty")
	}
	return &MarkupBuilder{name: name}, nil
}

// AddParameter appends one pre-rendered parameter expression. Parameters
// render in the exact order they were added.
func (b *MarkupBuilder) AddParameter(expr string) error {
	if expr == "" {
		return gen.NewArgumentError("expr", "parameter expression cannot be empty")
	}
	b.params = append(b.params, expr)
	return nil
}

// String renders the markup line. Rendering is side-effect-free and may
// be repeated with identical results.
func (b *MarkupBuilder) String() string {
	var s strings.Builder
	s.WriteByte('[')
	s.WriteString(strings.TrimSuffix(b.name, attributeSuffix))
	if len(b.params) > 0 {
		s.WriteByte('(')
		s.WriteString(strings.Join(b.params, ", "))
		s.WriteByte(')')
	}
	s.WriteByte(']')
	return s.String()
}
