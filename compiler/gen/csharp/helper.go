package csharp

import (
	"fmt"
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/schema/field"
)

// Helper renders C# spellings: type names for semantic value types and
// escaped string literals. It implements gen.NameFormatter.
type Helper struct{}

// Verify Helper implements NameFormatter at compile time.
var _ gen.NameFormatter = Helper{}

var kindNames = map[field.Kind]string{
	field.KindBool:    "bool",
	field.KindInt16:   "short",
	field.KindInt32:   "int",
	field.KindInt64:   "long",
	field.KindFloat32: "float",
	field.KindFloat64: "double",
	field.KindDecimal: "decimal",
	field.KindString:  "string",
	field.KindTime:    "DateTime",
	field.KindUUID:    "Guid",
	field.KindBytes:   "byte[]",
}

// TypeName returns the C# type name for the given value type. Nillable
// value kinds get the "?" suffix; reference kinds already represent
// absence and are returned unchanged.
func (Helper) TypeName(t field.TypeInfo, nillable bool) string {
	name, ok := kindNames[t.Kind]
	if !ok {
		name = t.Ident
		if name == "" {
			name = "object"
		}
	}
	if nillable && !t.Nullable() {
		name += "?"
	}
	return name
}

// Literal quotes s as a C# string literal.
func (Helper) Literal(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\x00':
			b.WriteString(`\0`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
