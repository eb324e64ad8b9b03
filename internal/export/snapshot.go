// Package export produces read-only analytical snapshots of in-memory
// tables. It never participates in load; a snapshot going stale after
// further mutation is expected.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ulindb/ulindb/internal/types"
)

// SnapshotExt is the suffix given to every file Snapshot produces.
const SnapshotExt = ".snapshot.parquet"

// Snapshot flattens the current rows of table into a single Parquet file at
// <dir>/<table-name>.snapshot.parquet and returns that path. The Parquet
// schema is derived once from table.Schema: each Int column becomes an
// INT32 field, each Str column a BYTE_ARRAY/UTF8 field.
func Snapshot(table *types.Table, dir string) (string, error) {
	if len(table.Schema.Cols) == 0 {
		return "", fmt.Errorf("table %q has no columns to snapshot", table.Schema.Name)
	}

	path := filepath.Join(dir, table.Schema.Name+SnapshotExt)

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewJSONWriter(jsonSchema(table.Schema), fw, 4)
	if err != nil {
		return "", fmt.Errorf("creating parquet writer for %s: %w", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range table.Rows {
		rec, err := jsonRecord(table.Schema, row)
		if err != nil {
			return "", fmt.Errorf("encoding row for %s: %w", path, err)
		}
		if err := pw.Write(rec); err != nil {
			return "", fmt.Errorf("writing row to %s: %w", path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return "", fmt.Errorf("closing parquet writer for %s: %w", path, err)
	}

	return path, nil
}

// jsonSchema renders schema as the JSON schema string parquet-go's
// NewJSONWriter expects, one field per column.
func jsonSchema(schema types.TableSchema) string {
	var b strings.Builder
	b.WriteString(`{"Tag":"name=` + schema.Name + `","Fields":[`)
	for i, col := range schema.Cols {
		if i > 0 {
			b.WriteString(",")
		}
		switch col.DataType {
		case types.Int:
			b.WriteString(fmt.Sprintf(`{"Tag":"name=%s, type=INT32"}`, col.Name))
		case types.Str:
			b.WriteString(fmt.Sprintf(`{"Tag":"name=%s, type=BYTE_ARRAY, convertedtype=UTF8"}`, col.Name))
		}
	}
	b.WriteString("]}")
	return b.String()
}

// jsonRecord renders one row as the JSON text NewJSONWriter's Write expects.
func jsonRecord(schema types.TableSchema, row types.Row) (string, error) {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range schema.Cols {
		if i > 0 {
			b.WriteString(",")
		}
		val := row[i]
		switch col.DataType {
		case types.Int:
			fmt.Fprintf(&b, "%q:%d", col.Name, val.IntVal)
		case types.Str:
			fmt.Fprintf(&b, "%q:%q", col.Name, val.StrVal)
		default:
			return "", fmt.Errorf("column %q has non-persistable type %v", col.Name, col.DataType)
		}
	}
	b.WriteString("}")
	return b.String(), nil
}
