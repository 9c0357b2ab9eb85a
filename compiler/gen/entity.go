package gen

import (
	"sort"

	"github.com/go-openapi/inflect"

	"github.com/syssam/scaffold/schema/field"
)

// The following types form the read-only metadata model the emitters
// consume. The model is fully resolved by compiler/load (or by an
// inspector) before any emitter sees it; the emitters never mutate it.
type (
	// Model is one scaffolded data model: the entities reflected from a
	// relational schema plus model-wide facts such as the default schema.
	Model struct {
		// Name of the model, used for the context/container type.
		Name string
		// DefaultSchema is the schema tables live in when none is
		// declared explicitly. Empty when the dialect has no notion
		// of schemas.
		DefaultSchema string
		// Entities in declaration order.
		Entities []*Entity
	}

	// Entity describes one generated class, derived from one table.
	Entity struct {
		// Name is the class name, a valid identifier in every target
		// language.
		Name string
		// Model is the owning model, used for default-schema lookups.
		Model *Model
		// Table is the explicit table name, empty when the table
		// follows the naming convention.
		Table string
		// Schema is the explicit schema name, empty when the table
		// lives in the default schema.
		Schema string
		// ContainerName overrides the conventional set name.
		ContainerName string
		// Properties holds the scalar column mappings in the order
		// the reflection process discovered them.
		Properties []*Property
		// Navigations holds the relationships to other entities.
		Navigations []*Navigation
		// Annotations that were attached to the entity description.
		Annotations Annotations
	}

	// Property is one scalar column mapping.
	Property struct {
		// Name is the member name.
		Name string
		// Entity is the owning entity.
		Entity *Entity
		// Type holds the semantic value type.
		Type field.TypeInfo
		// Nillable indicates the column accepts NULL. For value kinds
		// this selects the optional rendering; for reference kinds a
		// false value is a schema-level override.
		Nillable bool
		// Ordinal is the declared column position. It defines the
		// emission order and is unique within the entity.
		Ordinal int
		// MaxLength is the declared maximum length, nil when none.
		MaxLength *int
		// Column is the explicit column name, empty when the column
		// is named after the property.
		Column string
		// ColumnType is the explicit store type, empty when implied
		// by the value type.
		ColumnType string
		// Annotations that were attached to the property description.
		Annotations Annotations
	}

	// Navigation is a relationship member pointing at another entity.
	Navigation struct {
		// Name is the member name.
		Name string
		// Entity is the owning entity.
		Entity *Entity
		// Type is the entity the navigation points at.
		Type *Entity
		// Multiplicity selects a single reference or a collection.
		Multiplicity Multiplicity
		// Direction tells which relationship side this member is on.
		Direction Direction
		// ForeignKey describes the foreign key backing the
		// relationship.
		ForeignKey *ForeignKey
		// Inverse is the paired navigation on the target entity,
		// nil when the relationship is one-directional.
		Inverse *Navigation
	}

	// ForeignKey describes the foreign key backing a navigation.
	ForeignKey struct {
		// Properties are the participating property names on the
		// dependent side, in declared order.
		Properties []string
		// PrincipalKey reports whether the referenced key is the
		// principal entity's primary key.
		PrincipalKey bool
	}

	// Annotations is a free-form bag of facts attached by the
	// reflection process. Values are JSON/YAML-decoded objects.
	Annotations map[string]any
)

// String returns the named annotation rendered as a string. Missing
// entries and non-string values report empty.
func (a Annotations) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Multiplicity of a navigation.
type Multiplicity uint8

const (
	// Single is a reference to at most one target entity.
	Single Multiplicity = iota
	// Collection is a reference to many target entities.
	Collection
)

// String returns the multiplicity name.
func (m Multiplicity) String() string {
	if m == Collection {
		return "collection"
	}
	return "single"
}

// Direction of a navigation.
type Direction uint8

const (
	// DependentToPrincipal is the foreign-key-holder side pointing at
	// the key-holder side.
	DependentToPrincipal Direction = iota
	// PrincipalToDependent is the key-holder side pointing back.
	PrincipalToDependent
)

// String returns the direction name.
func (d Direction) String() string {
	if d == PrincipalToDependent {
		return "to_dependent"
	}
	return "to_principal"
}

// SetName returns the conventional name of the set exposing the entity on
// its context: the explicit container name when one was declared, the
// pluralized entity name otherwise.
func (e *Entity) SetName() string {
	if e.ContainerName != "" {
		return e.ContainerName
	}
	return inflect.Pluralize(e.Name)
}

// SortedProperties returns the properties sorted ascending by ordinal.
// Ordinals are unique within an entity, so the order is total.
func (e *Entity) SortedProperties() []*Property {
	ps := make([]*Property, len(e.Properties))
	copy(ps, e.Properties)
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Ordinal < ps[j].Ordinal
	})
	return ps
}

// SortedNavigations returns the navigations in emission order:
// dependent-to-principal before principal-to-dependent, single-valued
// before collections within each group, declaration order among equals.
func (e *Entity) SortedNavigations() []*Navigation {
	ns := make([]*Navigation, len(e.Navigations))
	copy(ns, e.Navigations)
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Direction != ns[j].Direction {
			return ns[i].Direction == DependentToPrincipal
		}
		if ns[i].Multiplicity != ns[j].Multiplicity {
			return ns[i].Multiplicity == Single
		}
		return false
	})
	return ns
}

// CollectionNavigations returns the collection-valued navigations in
// declaration order.
func (e *Entity) CollectionNavigations() []*Navigation {
	var ns []*Navigation
	for _, n := range e.Navigations {
		if n.Multiplicity == Collection {
			ns = append(ns, n)
		}
	}
	return ns
}

// Entity returns the entity with the given name, or nil.
func (m *Model) Entity(name string) *Entity {
	for _, e := range m.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Navigation returns the navigation with the given name, or nil.
func (e *Entity) Navigation(name string) *Navigation {
	for _, n := range e.Navigations {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Property returns the property with the given name, or nil.
func (e *Entity) Property(name string) *Property {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}
