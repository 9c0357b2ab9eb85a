// Package inspect reflects the physical schema of a live database into a
// schema description the loader can resolve: tables, columns, primary
// keys and foreign keys, with identifiers renamed to class conventions.
package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/go-openapi/inflect"

	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/load"
)

// Inspector reads a database's physical schema.
type Inspector interface {
	// Inspect returns the reflected schema description.
	Inspect(ctx context.Context) (*load.SchemaDescription, error)
}

// Options configure an inspection.
type Options struct {
	// Schema restricts inspection to one schema. Empty selects the
	// connection's current schema.
	Schema string
	// Exclude lists table names to skip.
	Exclude []string
}

// Open connects to the database and returns the matching inspector.
// Supported dialects: "sqlite", "mysql", "postgres".
func Open(dialect, dsn string, opts *Options) (Inspector, error) {
	if opts == nil {
		opts = &Options{}
	}
	switch dialect {
	case "sqlite", "sqlite3":
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return NewSQLite(db, opts), nil
	case "mysql":
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
		return NewMySQL(db, opts), nil
	case "postgres":
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return NewPostgres(db, opts), nil
	default:
		return nil, gen.NewConfigError("Dialect", dialect, "unsupported dialect; use sqlite, mysql or postgres")
	}
}

// Table is one reflected physical table, the dialect-independent shape
// every inspector produces before description building.
type Table struct {
	Schema      string
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKeyRef
}

// Column is one reflected physical column.
type Column struct {
	Name      string
	Position  int
	StoreType string
	Nullable  bool
}

// ForeignKeyRef is one reflected foreign key of a table.
type ForeignKeyRef struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

// buildDescription turns reflected tables into a schema description:
// entity and property names follow class conventions, relationship pairs
// become linked navigations, each physical fact is recorded so the
// emitters can decide what convention already implies.
func buildDescription(name string, tables []Table, defaultSchema string) *load.SchemaDescription {
	d := &load.SchemaDescription{
		Name:          name,
		DefaultSchema: defaultSchema,
	}
	entities := make(map[string]*load.EntityDescription, len(tables))
	byTable := make(map[string]*Table, len(tables))

	for i := range tables {
		t := &tables[i]
		e := &load.EntityDescription{
			Name:   EntityName(t.Name),
			Table:  t.Name,
			Schema: t.Schema,
		}
		columns := make([]Column, len(t.Columns))
		copy(columns, t.Columns)
		sort.SliceStable(columns, func(i, j int) bool {
			return columns[i].Position < columns[j].Position
		})
		for _, c := range columns {
			info, maxLength, columnType := mapStoreType(c.StoreType)
			e.Properties = append(e.Properties, &load.PropertyDescription{
				Name:       PropertyName(c.Name),
				Type:       info.Kind.String(),
				Ident:      info.Ident,
				Namespace:  info.Namespace,
				Nillable:   c.Nullable,
				Ordinal:    c.Position,
				MaxLength:  maxLength,
				Column:     c.Name,
				ColumnType: columnType,
			})
		}
		entities[t.Name] = e
		byTable[t.Name] = t
		d.Entities = append(d.Entities, e)
	}

	for _, t := range tables {
		dependent := entities[t.Name]
		for _, fk := range t.ForeignKeys {
			principal := entities[fk.RefTable]
			ref := byTable[fk.RefTable]
			if principal == nil || ref == nil {
				// Reference into an excluded table; the relationship
				// cannot be represented.
				continue
			}
			properties := make([]string, len(fk.Columns))
			for i, c := range fk.Columns {
				properties[i] = PropertyName(c)
			}
			// An empty RefColumns list is an implicit reference to the
			// target's primary key.
			key := &load.ForeignKeyDescription{
				Properties:   properties,
				PrincipalKey: len(fk.RefColumns) == 0 || sameColumns(fk.RefColumns, ref.PrimaryKey),
			}
			toPrincipal := &load.NavigationDescription{
				Name:        memberName(dependent, principal.Name),
				Target:      principal.Name,
				ToPrincipal: true,
				ForeignKey:  key,
			}
			dependent.Navigations = append(dependent.Navigations, toPrincipal)
			toDependent := &load.NavigationDescription{
				Name:       memberName(principal, inflect.Pluralize(dependent.Name)),
				Target:     dependent.Name,
				Collection: true,
				ForeignKey: key,
				Inverse:    toPrincipal.Name,
			}
			principal.Navigations = append(principal.Navigations, toDependent)
			toPrincipal.Inverse = toDependent.Name
		}
	}

	return d
}

// memberName returns name, suffixed until it collides with no existing
// member of the entity.
func memberName(e *load.EntityDescription, name string) string {
	candidate := name
	for n := 1; taken(e, candidate); n++ {
		candidate = fmt.Sprintf("%sNavigation%d", name, n)
		if n == 1 {
			candidate = name + "Navigation"
		}
	}
	return candidate
}

// taken reports if the entity already declares a member with that name.
func taken(e *load.EntityDescription, name string) bool {
	if e.Name == name {
		return true
	}
	for _, p := range e.Properties {
		if p.Name == name {
			return true
		}
	}
	for _, n := range e.Navigations {
		if n.Name == name {
			return true
		}
	}
	return false
}

// sameColumns reports if both lists name the same column set.
func sameColumns(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// excluded reports if the table was excluded by the options.
func (o *Options) excluded(table string) bool {
	for _, name := range o.Exclude {
		if name == table {
			return true
		}
	}
	return false
}
