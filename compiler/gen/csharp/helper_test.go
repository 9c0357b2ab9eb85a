package csharp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/scaffold/schema/field"
)

func TestHelper_TypeName(t *testing.T) {
	h := Helper{}
	tests := []struct {
		name     string
		info     field.TypeInfo
		nillable bool
		want     string
	}{
		{"int", field.TypeInfo{Kind: field.KindInt32}, false, "int"},
		{"nullable int", field.TypeInfo{Kind: field.KindInt32}, true, "int?"},
		{"long", field.TypeInfo{Kind: field.KindInt64}, false, "long"},
		{"short", field.TypeInfo{Kind: field.KindInt16}, false, "short"},
		{"bool", field.TypeInfo{Kind: field.KindBool}, false, "bool"},
		{"nullable bool", field.TypeInfo{Kind: field.KindBool}, true, "bool?"},
		{"float", field.TypeInfo{Kind: field.KindFloat32}, false, "float"},
		{"double", field.TypeInfo{Kind: field.KindFloat64}, false, "double"},
		{"decimal", field.TypeInfo{Kind: field.KindDecimal}, false, "decimal"},
		{"datetime", field.TypeInfo{Kind: field.KindTime}, false, "DateTime"},
		{"nullable datetime", field.TypeInfo{Kind: field.KindTime}, true, "DateTime?"},
		{"guid", field.TypeInfo{Kind: field.KindUUID}, false, "Guid"},
		// Reference types already represent absence; no suffix.
		{"string", field.TypeInfo{Kind: field.KindString}, false, "string"},
		{"nullable string", field.TypeInfo{Kind: field.KindString}, true, "string"},
		{"bytes", field.TypeInfo{Kind: field.KindBytes}, true, "byte[]"},
		{"custom", field.TypeInfo{Kind: field.KindOther, Ident: "Geometry"}, true, "Geometry"},
		{"custom without ident", field.TypeInfo{Kind: field.KindOther}, false, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.TypeName(tt.info, tt.nillable))
		})
	}
}

func TestHelper_Literal(t *testing.T) {
	h := Helper{}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Blogs", `"Blogs"`},
		{"empty", "", `""`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"nul", "a\x00b", `"a\0b"`},
		{"control", "a\x01b", `"ab"`},
		{"unicode passthrough", "héllo", `"héllo"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Literal(tt.in))
		})
	}
}
