package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ulindb/ulindb/internal/types"
)

// StrWidth is the fixed on-disk width of a Str column, in bytes.
const StrWidth = 50

// IntWidth is the fixed on-disk width of an Int column, in bytes.
const IntWidth = 4

// RowWidth returns the byte width of one row of schema: the sum of each
// column's fixed width.
func RowWidth(schema types.TableSchema) int {
	width := 0
	for _, col := range schema.Cols {
		switch col.DataType {
		case types.Int:
			width += IntWidth
		case types.Str:
			width += StrWidth
		}
	}
	return width
}

// ReadRows loads every row in a .tbl file according to schema. A missing
// file is created empty and yields zero rows. A file whose size is not a
// multiple of the row width is rejected as corrupt.
func ReadRows(path string, schema types.TableSchema) ([]types.Row, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		created, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		created.Close()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	rowWidth := RowWidth(schema)
	if rowWidth == 0 {
		return nil, nil
	}
	size := info.Size()
	if size%int64(rowWidth) != 0 {
		return nil, fmt.Errorf("corrupt row file %s: size %d is not a multiple of row width %d", path, size, rowWidth)
	}
	rowCount := int(size / int64(rowWidth))

	rows := make([]types.Row, 0, rowCount)
	buf := make([]byte, rowWidth)
	for i := 0; i < rowCount; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, fmt.Errorf("reading row %d of %s: %w", i, path, err)
		}
		row, err := decodeRow(buf, schema)
		if err != nil {
			return nil, fmt.Errorf("decoding row %d of %s: %w", i, path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows truncates path and writes every row of rows encoded per schema.
// warn receives a message for each Str value truncated to fit StrWidth; it
// may be nil.
func WriteRows(path string, schema types.TableSchema, rows []types.Row, warn func(string)) error {
	if warn == nil {
		warn = func(string) {}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rowWidth := RowWidth(schema)
	buf := make([]byte, rowWidth)
	for _, row := range rows {
		if err := encodeRow(buf, schema, row, warn); err != nil {
			return fmt.Errorf("encoding row for %s: %w", path, err)
		}
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func decodeRow(buf []byte, schema types.TableSchema) (types.Row, error) {
	row := make(types.Row, len(schema.Cols))
	offset := 0
	for i, col := range schema.Cols {
		switch col.DataType {
		case types.Int:
			v := int32(binary.NativeEndian.Uint32(buf[offset : offset+IntWidth]))
			row[i] = types.IntValue(v)
			offset += IntWidth
		case types.Str:
			field := buf[offset : offset+StrWidth]
			end := 0
			for end < len(field) && field[end] != 0 {
				end++
			}
			row[i] = types.StrValue(string(field[:end]))
			offset += StrWidth
		default:
			return nil, fmt.Errorf("column %q has non-persistable type %v", col.Name, col.DataType)
		}
	}
	return row, nil
}

func encodeRow(buf []byte, schema types.TableSchema, row types.Row, warn func(string)) error {
	for i := range buf {
		buf[i] = 0
	}
	offset := 0
	for i, col := range schema.Cols {
		val := row[i]
		switch col.DataType {
		case types.Int:
			binary.NativeEndian.PutUint32(buf[offset:offset+IntWidth], uint32(val.IntVal))
			offset += IntWidth
		case types.Str:
			field := buf[offset : offset+StrWidth]
			s := val.StrVal
			if len(s) > StrWidth {
				warn(fmt.Sprintf("value %q for column %q truncated to %d bytes", s, col.Name, StrWidth))
				s = s[:StrWidth]
			}
			copy(field, s)
			offset += StrWidth
		default:
			return fmt.Errorf("column %q has non-persistable type %v", col.Name, col.DataType)
		}
	}
	return nil
}
