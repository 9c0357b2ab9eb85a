package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	// Registers the pure-Go sqlite driver for Open("sqlite", ...).
	_ "modernc.org/sqlite"

	"github.com/syssam/scaffold/compiler/load"
)

// SQLite reflects a SQLite database through its PRAGMA interface.
type SQLite struct {
	db   *sql.DB
	opts *Options
}

// NewSQLite creates a SQLite inspector over an open connection.
func NewSQLite(db *sql.DB, opts *Options) *SQLite {
	if opts == nil {
		opts = &Options{}
	}
	return &SQLite{db: db, opts: opts}
}

// Inspect returns the reflected schema description. SQLite has no schema
// namespaces, so the description carries no default schema.
func (s *SQLite) Inspect(ctx context.Context) (*load.SchemaDescription, error) {
	names, err := s.tableNames(ctx)
	if err != nil {
		return nil, err
	}
	var tables []Table
	for _, name := range names {
		if s.opts.excluded(name) {
			continue
		}
		t, err := s.table(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return buildDescription("", tables, ""), nil
}

// tableNames lists the user tables, excluding SQLite's internal ones.
func (s *SQLite) tableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sqlite tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan sqlite table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// table reflects one table through table_info and foreign_key_list.
func (s *SQLite) table(ctx context.Context, name string) (Table, error) {
	t := Table{Name: name}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return t, fmt.Errorf("describe sqlite table %s: %w", name, err)
	}
	defer rows.Close()
	type pkColumn struct {
		name string
		rank int
	}
	var pk []pkColumn
	for rows.Next() {
		var (
			cid, notNull, primary int
			colName, colType      string
			dflt                  sql.NullString
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &primary); err != nil {
			return t, fmt.Errorf("scan sqlite column of %s: %w", name, err)
		}
		t.Columns = append(t.Columns, Column{
			Name:      colName,
			Position:  cid,
			StoreType: colType,
			Nullable:  notNull == 0,
		})
		if primary > 0 {
			pk = append(pk, pkColumn{name: colName, rank: primary})
		}
	}
	if err := rows.Err(); err != nil {
		return t, err
	}
	sort.Slice(pk, func(i, j int) bool { return pk[i].rank < pk[j].rank })
	for _, c := range pk {
		t.PrimaryKey = append(t.PrimaryKey, c.name)
	}

	fkRows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", name))
	if err != nil {
		return t, fmt.Errorf("list sqlite foreign keys of %s: %w", name, err)
	}
	defer fkRows.Close()
	// Composite keys span several rows sharing an id, ordered by seq.
	byID := make(map[int]*ForeignKeyRef)
	var order []int
	for fkRows.Next() {
		var (
			id, seq                   int
			refTable, from            string
			to                        sql.NullString
			onUpdate, onDelete, match string
		)
		if err := fkRows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return t, fmt.Errorf("scan sqlite foreign key of %s: %w", name, err)
		}
		fk, ok := byID[id]
		if !ok {
			fk = &ForeignKeyRef{RefTable: refTable}
			byID[id] = fk
			order = append(order, id)
		}
		fk.Columns = append(fk.Columns, from)
		if to.Valid {
			fk.RefColumns = append(fk.RefColumns, to.String)
		}
	}
	if err := fkRows.Err(); err != nil {
		return t, err
	}
	for _, id := range order {
		// An empty RefColumns list means every "to" column was NULL:
		// the key references the target's primary key implicitly.
		t.ForeignKeys = append(t.ForeignKeys, *byID[id])
	}
	return t, nil
}
