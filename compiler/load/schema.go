// Package load parses schema descriptions into the scaffold metadata
// model. A description is the serialized output of a schema-reflection
// process (an inspector or a hand-written file) in JSON or YAML.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/schema/field"
)

// SchemaDescription is one reflected relational schema.
type SchemaDescription struct {
	Name          string               `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	DefaultSchema string               `json:"default_schema,omitempty" yaml:"default_schema,omitempty" msgpack:"default_schema,omitempty"`
	Entities      []*EntityDescription `json:"entities,omitempty" yaml:"entities,omitempty" msgpack:"entities,omitempty"`
}

// EntityDescription is one reflected table.
type EntityDescription struct {
	Name        string                   `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Table       string                   `json:"table,omitempty" yaml:"table,omitempty" msgpack:"table,omitempty"`
	Schema      string                   `json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema,omitempty"`
	SetName     string                   `json:"set_name,omitempty" yaml:"set_name,omitempty" msgpack:"set_name,omitempty"`
	Properties  []*PropertyDescription   `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
	Navigations []*NavigationDescription `json:"navigations,omitempty" yaml:"navigations,omitempty" msgpack:"navigations,omitempty"`
	Annotations map[string]any           `json:"annotations,omitempty" yaml:"annotations,omitempty" msgpack:"annotations,omitempty"`
}

// PropertyDescription is one reflected column.
type PropertyDescription struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Type        string         `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Ident       string         `json:"ident,omitempty" yaml:"ident,omitempty" msgpack:"ident,omitempty"`
	Namespace   string         `json:"namespace,omitempty" yaml:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Nillable    bool           `json:"nillable,omitempty" yaml:"nillable,omitempty" msgpack:"nillable,omitempty"`
	Ordinal     int            `json:"ordinal" yaml:"ordinal" msgpack:"ordinal"`
	MaxLength   *int           `json:"max_length,omitempty" yaml:"max_length,omitempty" msgpack:"max_length,omitempty"`
	Column      string         `json:"column,omitempty" yaml:"column,omitempty" msgpack:"column,omitempty"`
	ColumnType  string         `json:"column_type,omitempty" yaml:"column_type,omitempty" msgpack:"column_type,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty" yaml:"annotations,omitempty" msgpack:"annotations,omitempty"`
}

// NavigationDescription is one reflected relationship side.
type NavigationDescription struct {
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Target      string                  `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
	Collection  bool                    `json:"collection,omitempty" yaml:"collection,omitempty" msgpack:"collection,omitempty"`
	ToPrincipal bool                    `json:"to_principal,omitempty" yaml:"to_principal,omitempty" msgpack:"to_principal,omitempty"`
	ForeignKey  *ForeignKeyDescription `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty" msgpack:"foreign_key,omitempty"`
	Inverse     string                  `json:"inverse,omitempty" yaml:"inverse,omitempty" msgpack:"inverse,omitempty"`
}

// ForeignKeyDescription is one reflected foreign key.
type ForeignKeyDescription struct {
	Properties   []string `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
	PrincipalKey bool     `json:"principal_key,omitempty" yaml:"principal_key,omitempty" msgpack:"principal_key,omitempty"`
}

// FromFile reads a schema description from a JSON or YAML file, selected
// by extension, and resolves it into a model.
func FromFile(path string) (*gen.Model, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema description: %w", err)
	}
	var d SchemaDescription
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(buf, &d); err != nil {
			return nil, fmt.Errorf("decode schema description %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &d); err != nil {
			return nil, fmt.Errorf("decode schema description %s: %w", path, err)
		}
	default:
		return nil, gen.NewConfigError("Schema", path, "unsupported schema description format; use .json, .yaml or .yml")
	}
	return d.Model()
}

// Model resolves the description into a fully linked metadata model:
// value types parsed, navigation targets and inverses wired, foreign keys
// checked against the declared properties.
func (d *SchemaDescription) Model() (*gen.Model, error) {
	m := &gen.Model{
		Name:          d.Name,
		DefaultSchema: d.DefaultSchema,
	}

	// First pass: entities and properties, so navigation targets can be
	// resolved regardless of declaration order.
	for _, ed := range d.Entities {
		if ed.Name == "" {
			return nil, gen.NewSchemaError("", "", "entity name cannot be empty", nil)
		}
		if m.Entity(ed.Name) != nil {
			return nil, gen.NewSchemaError(ed.Name, "", "duplicate entity name", nil)
		}
		e := &gen.Entity{
			Name:          ed.Name,
			Model:         m,
			Table:         ed.Table,
			Schema:        ed.Schema,
			ContainerName: ed.SetName,
			Annotations:   ed.Annotations,
		}
		seenOrdinals := make(map[int]string, len(ed.Properties))
		for _, pd := range ed.Properties {
			p, err := pd.property(e)
			if err != nil {
				return nil, err
			}
			if prev, ok := seenOrdinals[p.Ordinal]; ok {
				return nil, gen.NewSchemaError(e.Name, p.Name, fmt.Sprintf("ordinal %d already used by %s", p.Ordinal, prev), nil)
			}
			seenOrdinals[p.Ordinal] = p.Name
			if e.Property(p.Name) != nil {
				return nil, gen.NewSchemaError(e.Name, p.Name, "duplicate property name", nil)
			}
			e.Properties = append(e.Properties, p)
		}
		m.Entities = append(m.Entities, e)
	}

	// Second pass: navigations.
	for _, ed := range d.Entities {
		e := m.Entity(ed.Name)
		for _, nd := range ed.Navigations {
			n, err := nd.navigation(e, m)
			if err != nil {
				return nil, err
			}
			if e.Navigation(n.Name) != nil || e.Property(n.Name) != nil {
				return nil, gen.NewSchemaError(e.Name, n.Name, "duplicate member name", nil)
			}
			e.Navigations = append(e.Navigations, n)
		}
	}

	// Third pass: inverses, resolvable only once both sides exist.
	for _, ed := range d.Entities {
		e := m.Entity(ed.Name)
		for _, nd := range ed.Navigations {
			if nd.Inverse == "" {
				continue
			}
			n := e.Navigation(nd.Name)
			inverse := n.Type.Navigation(nd.Inverse)
			if inverse == nil {
				return nil, gen.NewSchemaError(e.Name, nd.Name, fmt.Sprintf("inverse navigation %s not found on %s", nd.Inverse, n.Type.Name), nil)
			}
			n.Inverse = inverse
		}
	}

	return m, nil
}

// property resolves one property description.
func (pd *PropertyDescription) property(e *gen.Entity) (*gen.Property, error) {
	if pd.Name == "" {
		return nil, gen.NewSchemaError(e.Name, "", "property name cannot be empty", nil)
	}
	kind, err := field.ParseKind(pd.Type)
	if err != nil {
		return nil, gen.NewSchemaError(e.Name, pd.Name, "unknown value type", err)
	}
	if kind == field.KindOther && pd.Ident == "" {
		return nil, gen.NewSchemaError(e.Name, pd.Name, "custom value type requires an ident", nil)
	}
	return &gen.Property{
		Name:   pd.Name,
		Entity: e,
		Type: field.TypeInfo{
			Kind:      kind,
			Ident:     pd.Ident,
			Namespace: pd.Namespace,
		},
		Nillable:    pd.Nillable,
		Ordinal:     pd.Ordinal,
		MaxLength:   pd.MaxLength,
		Column:      pd.Column,
		ColumnType:  pd.ColumnType,
		Annotations: pd.Annotations,
	}, nil
}

// navigation resolves one navigation description, excluding its inverse.
func (nd *NavigationDescription) navigation(e *gen.Entity, m *gen.Model) (*gen.Navigation, error) {
	if nd.Name == "" {
		return nil, gen.NewSchemaError(e.Name, "", "navigation name cannot be empty", nil)
	}
	target := m.Entity(nd.Target)
	if target == nil {
		return nil, gen.NewSchemaError(e.Name, nd.Name, fmt.Sprintf("target entity %s not found", nd.Target), nil)
	}
	n := &gen.Navigation{
		Name:   nd.Name,
		Entity: e,
		Type:   target,
	}
	if nd.Collection {
		n.Multiplicity = gen.Collection
	}
	if nd.ToPrincipal {
		n.Direction = gen.DependentToPrincipal
	} else {
		n.Direction = gen.PrincipalToDependent
	}
	if fd := nd.ForeignKey; fd != nil {
		// Foreign-key properties live on the dependent side: the owner
		// for dependent-to-principal navigations, the target otherwise.
		dependent := e
		if !nd.ToPrincipal {
			dependent = target
		}
		for _, name := range fd.Properties {
			if dependent.Property(name) == nil {
				return nil, gen.NewSchemaError(e.Name, nd.Name, fmt.Sprintf("foreign-key property %s not found on %s", name, dependent.Name), nil)
			}
		}
		n.ForeignKey = &gen.ForeignKey{
			Properties:   fd.Properties,
			PrincipalKey: fd.PrincipalKey,
		}
	}
	return n, nil
}
