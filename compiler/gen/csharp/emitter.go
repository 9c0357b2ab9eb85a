// Package csharp emits C# data-model classes from the scaffold metadata
// model. The emitter has one fixed output shape: imports, a namespace
// wrapper, and one partial class per entity, optionally decorated with
// data-annotation markup encoding the schema's constraints.
package csharp

import (
	"strconv"
	"strings"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/schema/field"
)

// Marker names carry the conventional qualifier; MarkupBuilder strips it
// on rendering.
const (
	tableMarker           = "TableAttribute"
	requiredMarker        = "RequiredAttribute"
	columnMarker          = "ColumnAttribute"
	stringLengthMarker    = "StringLengthAttribute"
	maxLengthMarker       = "MaxLengthAttribute"
	foreignKeyMarker      = "ForeignKeyAttribute"
	inversePropertyMarker = "InversePropertyAttribute"
)

// Baseline namespaces imported by every generated file. Property-type
// namespaces matching one of these are never re-imported.
const (
	coreNamespace        = "System"
	collectionsNamespace = "System.Collections.Generic"
)

// Namespaces required by data-annotation markup.
const (
	annotationsNamespace       = "System.ComponentModel.DataAnnotations"
	annotationsSchemaNamespace = "System.ComponentModel.DataAnnotations.Schema"
)

// Emitter generates one C# class per entity. It holds no per-call state:
// each Generate call writes into a fresh accumulator, so one emitter may
// serve concurrent calls on distinct entities.
type Emitter struct {
	formatter gen.NameFormatter
	source    gen.AnnotationSource
}

// Verify Emitter implements ClassEmitter at compile time.
var _ gen.ClassEmitter = (*Emitter)(nil)

// NewEmitter creates an emitter with the given collaborators. A nil
// formatter defaults to Helper; a nil source defaults to the model-backed
// annotation source.
func NewEmitter(formatter gen.NameFormatter, source gen.AnnotationSource) *Emitter {
	if formatter == nil {
		formatter = Helper{}
	}
	if source == nil {
		source = gen.SchemaAnnotations{}
	}
	return &Emitter{formatter: formatter, source: source}
}

// Extension returns the filename extension of emitted files.
func (e *Emitter) Extension() string {
	return ".cs"
}

// Generate returns the complete class text for the entity: import lines,
// a namespace wrapper, and the class body with constructor, scalar
// properties and navigation properties in their fixed order. When markup
// is enabled, each member is preceded by the data annotations the schema
// requires; markup implied by convention is never emitted.
func (e *Emitter) Generate(entity *gen.Entity, namespace string, markup bool) (string, error) {
	if entity == nil {
		return "", gen.NewArgumentError("entity", "cannot be nil")
	}
	if namespace == "" {
		return "", gen.NewArgumentError("namespace", "cannot be empty")
	}
	w := gen.NewCodeWriter()
	e.writeHeader(w, entity, namespace, markup)
	writeComment(w, e.source.EntityComment(entity))
	if markup {
		if err := e.writeTableMarkup(w, entity); err != nil {
			return "", err
		}
	}
	w.Line("public partial class " + entity.Name)
	w.Line("{")
	w.Indent()
	e.writeConstructor(w, entity)
	if err := e.writeProperties(w, entity, markup); err != nil {
		return "", err
	}
	if err := e.writeNavigations(w, entity, markup); err != nil {
		return "", err
	}
	w.Unindent()
	w.Line("}")
	w.Unindent()
	w.Line("}")
	return w.String(), nil
}

// writeComment renders a documentation comment as an XML summary block.
// Entities and properties without a comment annotation get none.
func writeComment(w *gen.CodeWriter, comment string) {
	if comment == "" {
		return
	}
	w.Line("/// <summary>")
	for _, line := range strings.Split(comment, "\n") {
		w.Line("/// " + line)
	}
	w.Line("/// </summary>")
}

// renderMarkup renders one marker line with the given parameter
// expressions.
func renderMarkup(name string, params ...string) (string, error) {
	b, err := NewMarkupBuilder(name)
	if err != nil {
		return "", err
	}
	for _, p := range params {
		if err := b.AddParameter(p); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// writeHeader emits the using directives and opens the namespace block.
// Property-type namespaces import in first-seen order over the entity's
// property list as declared, not re-sorted.
func (e *Emitter) writeHeader(w *gen.CodeWriter, entity *gen.Entity, namespace string, markup bool) {
	w.Line("using " + coreNamespace + ";")
	w.Line("using " + collectionsNamespace + ";")
	if markup {
		w.Line("using " + annotationsNamespace + ";")
		w.Line("using " + annotationsSchemaNamespace + ";")
	}
	seen := map[string]bool{
		coreNamespace:        true,
		collectionsNamespace: true,
	}
	for _, p := range entity.Properties {
		ns := p.Type.Namespace
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		w.Line("using " + ns + ";")
	}
	w.Blank()
	w.Line("namespace " + namespace)
	w.Line("{")
	w.Indent()
}

// writeTableMarkup emits the table marker when the mapping cannot be
// inferred by convention: an explicit schema differing from the default
// schema, or an explicit table name differing from the entity's set name.
// The table-name parameter is always supplied, even when only the schema
// triggered emission, keeping the marker's two-slot signature stable.
func (e *Emitter) writeTableMarkup(w *gen.CodeWriter, entity *gen.Entity) error {
	tableName := e.source.TableName(entity)
	schema := e.source.TableSchema(entity)
	defaultSchema := e.source.DefaultSchema(entity.Model)
	schemaDiffers := schema != "" && schema != defaultSchema
	nameDiffers := tableName != "" && tableName != entity.SetName()
	if !schemaDiffers && !nameDiffers {
		return nil
	}
	if tableName == "" {
		tableName = entity.SetName()
	}
	params := []string{e.formatter.Literal(tableName)}
	if schemaDiffers {
		params = append(params, "Schema = "+e.formatter.Literal(schema))
	}
	line, err := renderMarkup(tableMarker, params...)
	if err != nil {
		return err
	}
	w.Line(line)
	return nil
}

// writeConstructor emits the parameterless constructor initializing every
// collection navigation. Entities without collection navigations get no
// constructor at all.
func (e *Emitter) writeConstructor(w *gen.CodeWriter, entity *gen.Entity) {
	collections := entity.CollectionNavigations()
	if len(collections) == 0 {
		return
	}
	w.Line("public " + entity.Name + "()")
	w.Line("{")
	w.Indent()
	for _, n := range collections {
		w.Linef("%s = new HashSet<%s>();", n.Name, n.Type.Name)
	}
	w.Unindent()
	w.Line("}")
	w.Blank()
}

// writeProperties emits the scalar properties in ascending ordinal order.
func (e *Emitter) writeProperties(w *gen.CodeWriter, entity *gen.Entity, markup bool) error {
	for _, p := range entity.SortedProperties() {
		writeComment(w, e.source.PropertyComment(p))
		if markup {
			if err := e.writePropertyMarkup(w, p); err != nil {
				return err
			}
		}
		w.Linef("public %s %s { get; set; }", e.formatter.TypeName(p.Type, p.Nillable), p.Name)
	}
	return nil
}

// writePropertyMarkup emits, in fixed order, the required, column and
// length markers a property's schema facts call for.
func (e *Emitter) writePropertyMarkup(w *gen.CodeWriter, p *gen.Property) error {
	// Required only when non-nullability is a schema-level override on a
	// type that could otherwise represent absence.
	if !p.Nillable && p.Type.Nullable() {
		line, err := renderMarkup(requiredMarker)
		if err != nil {
			return err
		}
		w.Line(line)
	}

	columnName := e.source.ColumnName(p)
	columnType := e.source.ColumnType(p)
	var params []string
	if columnName != "" && columnName != p.Name {
		params = append(params, e.formatter.Literal(columnName))
	}
	if columnType != "" {
		params = append(params, "TypeName = "+e.formatter.Literal(columnType))
	}
	if len(params) > 0 {
		line, err := renderMarkup(columnMarker, params...)
		if err != nil {
			return err
		}
		w.Line(line)
	}

	if n, ok := e.source.MaxLength(p); ok {
		marker := maxLengthMarker
		if p.Type.Kind == field.KindString {
			marker = stringLengthMarker
		}
		line, err := renderMarkup(marker, strconv.Itoa(n))
		if err != nil {
			return err
		}
		w.Line(line)
	}
	return nil
}

// writeNavigations emits the navigation properties after one separator
// line. The whole phase is skipped for entities without navigations.
func (e *Emitter) writeNavigations(w *gen.CodeWriter, entity *gen.Entity, markup bool) error {
	navigations := entity.SortedNavigations()
	if len(navigations) == 0 {
		return nil
	}
	w.Blank()
	for _, n := range navigations {
		if markup {
			if err := e.writeNavigationMarkup(w, n); err != nil {
				return err
			}
		}
		if n.Multiplicity == gen.Collection {
			w.Linef("public virtual ICollection<%s> %s { get; set; }", n.Type.Name, n.Name)
		} else {
			w.Linef("public virtual %s %s { get; set; }", n.Type.Name, n.Name)
		}
	}
	return nil
}

// writeNavigationMarkup emits the foreign-key and inverse markers for one
// navigation. Both require the referenced key to be the principal's
// primary key; the foreign-key marker additionally requires the
// dependent-to-principal side.
func (e *Emitter) writeNavigationMarkup(w *gen.CodeWriter, n *gen.Navigation) error {
	fk := n.ForeignKey
	if fk == nil {
		return nil
	}
	if n.Direction == gen.DependentToPrincipal && fk.PrincipalKey {
		line, err := renderMarkup(foreignKeyMarker, e.formatter.Literal(strings.Join(fk.Properties, ",")))
		if err != nil {
			return err
		}
		w.Line(line)
	}
	if fk.PrincipalKey && n.Inverse != nil {
		line, err := renderMarkup(inversePropertyMarker, e.formatter.Literal(n.Inverse.Name))
		if err != nil {
			return err
		}
		w.Line(line)
	}
	return nil
}
