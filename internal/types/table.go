package types

import "fmt"

// Column is a single named, typed slot in a TableSchema. Type is never a
// valid column DataType.
type Column struct {
	Name     string
	DataType DataType
}

// TableSchema describes the ordered, named, typed columns of a table.
// Column names are unique within a schema (case-sensitive).
type TableSchema struct {
	Name string
	Cols []Column
}

// IndexOf returns the position of a column by name, or -1 if absent.
func (s TableSchema) IndexOf(name string) int {
	for i, col := range s.Cols {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Row is an ordered sequence of values, one per column of its table's schema.
type Row []Value

// Clone returns a copy of the row so callers can mutate it without aliasing
// the original slice.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table pairs a schema with its current rows.
type Table struct {
	Schema TableSchema
	Rows   []Row
}

// Database is a named, ordered collection of tables. Table names are unique
// within a database.
type Database struct {
	Name   string
	Tables []*Table
}

// FindTable returns the table named name and its index, or (nil, -1) if no
// such table exists.
func (db *Database) FindTable(name string) (*Table, int) {
	for i, t := range db.Tables {
		if t.Schema.Name == name {
			return t, i
		}
	}
	return nil, -1
}

// AddTable appends a new table to the database. Callers are expected to have
// already checked for a name collision.
func (db *Database) AddTable(t *Table) {
	db.Tables = append(db.Tables, t)
}

// RemoveTable deletes the table at idx, preserving the order of the rest.
func (db *Database) RemoveTable(idx int) {
	db.Tables = append(db.Tables[:idx], db.Tables[idx+1:]...)
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{schema:%q, cols:%d, rows:%d}", t.Schema.Name, len(t.Schema.Cols), len(t.Rows))
}
