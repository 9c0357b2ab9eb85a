// Package golang emits Go struct definitions from the scaffold metadata
// model: one struct per entity, with scalar fields in ordinal order and
// navigation fields for the entity's relationships.
package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/schema/field"
)

// Emitter generates one Go struct per entity using Jennifer, which tracks
// imports and formats the output on render.
type Emitter struct{}

// Verify Emitter implements ClassEmitter at compile time.
var _ gen.ClassEmitter = (*Emitter)(nil)

// NewEmitter creates a Go struct emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Extension returns the filename extension of emitted files.
func (e *Emitter) Extension() string {
	return ".go"
}

// Generate returns the Go source of the entity's struct inside the given
// package. When markup is enabled, fields carry db struct tags recording
// their column names alongside the json tags.
func (e *Emitter) Generate(entity *gen.Entity, namespace string, markup bool) (string, error) {
	if entity == nil {
		return "", gen.NewArgumentError("entity", "cannot be nil")
	}
	if namespace == "" {
		return "", gen.NewArgumentError("namespace", "cannot be empty")
	}

	f := jen.NewFile(namespace)
	f.HeaderComment("Code generated by scaffold. DO NOT EDIT.")

	fields := make([]jen.Code, 0, len(entity.Properties)+len(entity.Navigations))
	for _, p := range entity.SortedProperties() {
		fields = append(fields, jen.Id(p.Name).Add(goType(p)).Tag(structTags(p, markup)))
	}
	for _, n := range entity.SortedNavigations() {
		field := jen.Id(n.Name)
		if n.Multiplicity == gen.Collection {
			field = field.Index().Op("*").Id(n.Type.Name)
		} else {
			field = field.Op("*").Id(n.Type.Name)
		}
		fields = append(fields, field.Tag(map[string]string{"json": jsonName(n.Name) + ",omitempty"}))
	}

	f.Commentf("%s is the data model of the %s table.", entity.Name, tableName(entity))
	f.Type().Id(entity.Name).Struct(fields...)

	var b strings.Builder
	if err := f.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// goType returns the Jennifer code for a property's Go type. Nillable
// properties render as pointers of their base type.
func goType(p *gen.Property) jen.Code {
	if p.Nillable {
		return pointerType(p.Type)
	}
	return baseType(p.Type)
}

// pointerType returns the pointer rendering of a value type. Built-in
// kinds use Id("*type") to avoid whitespace issues that occur when
// combining Op("*") with primitive identifiers in struct fields.
func pointerType(t field.TypeInfo) jen.Code {
	switch t.Kind {
	case field.KindTime:
		return jen.Op("*").Qual("time", "Time")
	case field.KindUUID:
		return jen.Op("*").Qual("github.com/google/uuid", "UUID")
	case field.KindBytes:
		// []byte already represents absence as nil.
		return jen.Id("[]byte")
	case field.KindOther:
		if t.Ident != "" {
			return jen.Id("*" + t.Ident)
		}
		return jen.Id("*any")
	default:
		return jen.Id("*" + baseName(t.Kind))
	}
}

// baseType returns the Jennifer code for a value type without pointer.
func baseType(t field.TypeInfo) jen.Code {
	switch t.Kind {
	case field.KindBool:
		return jen.Bool()
	case field.KindInt16:
		return jen.Int16()
	case field.KindInt32:
		return jen.Int32()
	case field.KindInt64:
		return jen.Int64()
	case field.KindFloat32:
		return jen.Float32()
	case field.KindFloat64, field.KindDecimal:
		return jen.Float64()
	case field.KindString:
		return jen.String()
	case field.KindTime:
		return jen.Qual("time", "Time")
	case field.KindUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case field.KindBytes:
		return jen.Index().Byte()
	default:
		if t.Ident != "" {
			return jen.Id(t.Ident)
		}
		return jen.Any()
	}
}

// baseName is the primitive spelling used by the pointer shortcut.
func baseName(k field.Kind) string {
	switch k {
	case field.KindBool:
		return "bool"
	case field.KindInt16:
		return "int16"
	case field.KindInt32:
		return "int32"
	case field.KindInt64:
		return "int64"
	case field.KindFloat32:
		return "float32"
	case field.KindFloat64, field.KindDecimal:
		return "float64"
	case field.KindString:
		return "string"
	default:
		return "any"
	}
}

// structTags returns the struct tags for a scalar field. The db tag is
// only recorded when markup is requested, mirroring the data-annotation
// switch of the C# emitter.
func structTags(p *gen.Property, markup bool) map[string]string {
	tags := map[string]string{"json": jsonName(p.Name) + ",omitempty"}
	if markup {
		column := p.Column
		if column == "" {
			column = jsonName(p.Name)
		}
		tags["db"] = column
	}
	return tags
}

// jsonName lowercases the leading rune of a member name.
func jsonName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// tableName returns the table backing the entity, falling back to the
// conventional set name.
func tableName(e *gen.Entity) string {
	if e.Table != "" {
		return e.Table
	}
	return e.SetName()
}
