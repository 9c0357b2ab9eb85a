package inspect

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the postgres driver for Open("postgres", ...).
	_ "github.com/lib/pq"

	"github.com/syssam/scaffold/compiler/load"
)

// defaultPostgresSchema is the schema tables land in unless placed
// elsewhere explicitly.
const defaultPostgresSchema = "public"

// Postgres reflects a PostgreSQL database through information_schema.
type Postgres struct {
	db   *sql.DB
	opts *Options
}

// NewPostgres creates a PostgreSQL inspector over an open connection.
func NewPostgres(db *sql.DB, opts *Options) *Postgres {
	if opts == nil {
		opts = &Options{}
	}
	return &Postgres{db: db, opts: opts}
}

// Inspect returns the reflected schema description. Tables outside the
// default schema keep their schema on record so the emitters can mark
// the divergence.
func (p *Postgres) Inspect(ctx context.Context) (*load.SchemaDescription, error) {
	schema := p.opts.Schema
	if schema == "" {
		schema = defaultPostgresSchema
	}
	names, err := p.tableNames(ctx, schema)
	if err != nil {
		return nil, err
	}
	var tables []Table
	for _, name := range names {
		if p.opts.excluded(name) {
			continue
		}
		t, err := p.table(ctx, schema, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return buildDescription("", tables, defaultPostgresSchema), nil
}

// tableNames lists the base tables of the schema.
func (p *Postgres) tableNames(ctx context.Context, schema string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = $1 AND table_type = 'BASE TABLE'
ORDER BY table_name`, schema)
	if err != nil {
		return nil, fmt.Errorf("list postgres tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan postgres table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// table reflects one table's columns, primary key and foreign keys.
func (p *Postgres) table(ctx context.Context, schema, name string) (Table, error) {
	t := Table{Name: name}
	if schema != defaultPostgresSchema {
		t.Schema = schema
	}

	rows, err := p.db.QueryContext(ctx, `
SELECT column_name, ordinal_position, data_type, is_nullable, COALESCE(character_maximum_length, 0)
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`, schema, name)
	if err != nil {
		return t, fmt.Errorf("describe postgres table %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			colName, colType, nullable string
			position, maxLength        int
		)
		if err := rows.Scan(&colName, &position, &colType, &nullable, &maxLength); err != nil {
			return t, fmt.Errorf("scan postgres column of %s: %w", name, err)
		}
		if maxLength > 0 {
			colType = fmt.Sprintf("%s(%d)", colType, maxLength)
		}
		t.Columns = append(t.Columns, Column{
			Name:      colName,
			Position:  position,
			StoreType: colType,
			Nullable:  nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return t, err
	}

	pkRows, err := p.db.QueryContext(ctx, `
SELECT kcu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'
ORDER BY kcu.ordinal_position`, schema, name)
	if err != nil {
		return t, fmt.Errorf("list postgres primary key of %s: %w", name, err)
	}
	defer pkRows.Close()
	for pkRows.Next() {
		var colName string
		if err := pkRows.Scan(&colName); err != nil {
			return t, fmt.Errorf("scan postgres primary key of %s: %w", name, err)
		}
		t.PrimaryKey = append(t.PrimaryKey, colName)
	}
	if err := pkRows.Err(); err != nil {
		return t, err
	}

	fkRows, err := p.db.QueryContext(ctx, `
SELECT tc.constraint_name, kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'FOREIGN KEY'
ORDER BY tc.constraint_name, kcu.ordinal_position`, schema, name)
	if err != nil {
		return t, fmt.Errorf("list postgres foreign keys of %s: %w", name, err)
	}
	defer fkRows.Close()
	byName := make(map[string]*ForeignKeyRef)
	var order []string
	for fkRows.Next() {
		var constraint, colName, refTable, refColumn string
		if err := fkRows.Scan(&constraint, &colName, &refTable, &refColumn); err != nil {
			return t, fmt.Errorf("scan postgres foreign key of %s: %w", name, err)
		}
		fk, ok := byName[constraint]
		if !ok {
			fk = &ForeignKeyRef{RefTable: refTable}
			byName[constraint] = fk
			order = append(order, constraint)
		}
		fk.Columns = append(fk.Columns, colName)
		fk.RefColumns = append(fk.RefColumns, refColumn)
	}
	if err := fkRows.Err(); err != nil {
		return t, err
	}
	for _, constraint := range order {
		t.ForeignKeys = append(t.ForeignKeys, *byName[constraint])
	}
	return t, nil
}
