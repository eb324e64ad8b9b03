// Package storage implements the on-disk codec for a database directory: a
// text schema descriptor (.tbls) paired with a flat binary row file (.tbl)
// per table.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ulindb/ulindb/internal/types"
)

// SchemaExt and RowExt are the file extensions that make up one table.
const (
	SchemaExt = ".tbls"
	RowExt    = ".tbl"
)

// ParseSchema reads a .tbls descriptor:
//
//	<TableName>
//	<Col1>:<Type1>
//	<Col2>:<Type2>
//	...
//
// Column line numbers in error messages are 1-based over the column lines
// only; the name line is line 0.
func ParseSchema(r io.Reader) (types.TableSchema, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return types.TableSchema{}, fmt.Errorf("table name not provided: %w", err)
		}
		return types.TableSchema{}, fmt.Errorf("table name not provided")
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		return types.TableSchema{}, fmt.Errorf("table name can't be empty")
	}

	schema := types.TableSchema{Name: name}
	line := 0
	for scanner.Scan() {
		line++
		colName, typeName, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			return types.TableSchema{}, fmt.Errorf("invalid format for column at line %d", line)
		}
		colName = strings.TrimSpace(colName)
		typeName = strings.TrimSpace(typeName)

		if colName == "" {
			return types.TableSchema{}, fmt.Errorf("empty column name")
		}
		if schema.IndexOf(colName) >= 0 {
			return types.TableSchema{}, fmt.Errorf("column with name '%s' already exists", colName)
		}

		dataType, ok := types.ParseDataType(typeName)
		if !ok || dataType == types.Type {
			return types.TableSchema{}, fmt.Errorf("unknown column type at line %d", line)
		}

		schema.Cols = append(schema.Cols, types.Column{Name: colName, DataType: dataType})
	}
	if err := scanner.Err(); err != nil {
		return types.TableSchema{}, fmt.Errorf("error reading schema: %w", err)
	}

	return schema, nil
}

// WriteSchema renders a TableSchema back to its .tbls textual form.
func WriteSchema(w io.Writer, schema types.TableSchema) error {
	if _, err := fmt.Fprintln(w, schema.Name); err != nil {
		return fmt.Errorf("writing schema name: %w", err)
	}
	for _, col := range schema.Cols {
		if _, err := fmt.Fprintf(w, "%s:%s\n", col.Name, col.DataType); err != nil {
			return fmt.Errorf("writing column %q: %w", col.Name, err)
		}
	}
	return nil
}
