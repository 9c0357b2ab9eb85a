package inspect

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the mysql driver for Open("mysql", ...).
	_ "github.com/go-sql-driver/mysql"

	"github.com/syssam/scaffold/compiler/load"
)

// MySQL reflects a MySQL database through information_schema.
type MySQL struct {
	db   *sql.DB
	opts *Options
}

// NewMySQL creates a MySQL inspector over an open connection.
func NewMySQL(db *sql.DB, opts *Options) *MySQL {
	if opts == nil {
		opts = &Options{}
	}
	return &MySQL{db: db, opts: opts}
}

// Inspect returns the reflected schema description. MySQL schemas are
// databases; the connection's current database is inspected and the
// description carries no default schema.
func (m *MySQL) Inspect(ctx context.Context) (*load.SchemaDescription, error) {
	names, err := m.tableNames(ctx)
	if err != nil {
		return nil, err
	}
	var tables []Table
	for _, name := range names {
		if m.opts.excluded(name) {
			continue
		}
		t, err := m.table(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return buildDescription("", tables, ""), nil
}

// tableNames lists the base tables of the current database.
func (m *MySQL) tableNames(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("list mysql tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan mysql table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// table reflects one table's columns, primary key and foreign keys.
func (m *MySQL) table(ctx context.Context, name string) (Table, error) {
	t := Table{Name: name}

	rows, err := m.db.QueryContext(ctx, `
SELECT column_name, ordinal_position, column_type, is_nullable, column_key
FROM information_schema.columns
WHERE table_schema = DATABASE() AND table_name = ?
ORDER BY ordinal_position`, name)
	if err != nil {
		return t, fmt.Errorf("describe mysql table %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			colName, colType, nullable, key string
			position                        int
		)
		if err := rows.Scan(&colName, &position, &colType, &nullable, &key); err != nil {
			return t, fmt.Errorf("scan mysql column of %s: %w", name, err)
		}
		t.Columns = append(t.Columns, Column{
			Name:      colName,
			Position:  position,
			StoreType: colType,
			Nullable:  nullable == "YES",
		})
		if key == "PRI" {
			t.PrimaryKey = append(t.PrimaryKey, colName)
		}
	}
	if err := rows.Err(); err != nil {
		return t, err
	}

	fkRows, err := m.db.QueryContext(ctx, `
SELECT constraint_name, column_name, referenced_table_name, referenced_column_name
FROM information_schema.key_column_usage
WHERE table_schema = DATABASE() AND table_name = ? AND referenced_table_name IS NOT NULL
ORDER BY constraint_name, ordinal_position`, name)
	if err != nil {
		return t, fmt.Errorf("list mysql foreign keys of %s: %w", name, err)
	}
	defer fkRows.Close()
	byName := make(map[string]*ForeignKeyRef)
	var order []string
	for fkRows.Next() {
		var constraint, colName, refTable, refColumn string
		if err := fkRows.Scan(&constraint, &colName, &refTable, &refColumn); err != nil {
			return t, fmt.Errorf("scan mysql foreign key of %s: %w", name, err)
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
