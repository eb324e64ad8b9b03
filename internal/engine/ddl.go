package engine

import (
	"github.com/ulindb/ulindb/internal/types"
)

// execSelect implements the Select opcode: the value stack bottom names the
// source table, the remainder names projected columns (or "*" for all of
// them, expanded in declared order at that position).
func execSelect(db *types.Database, values []types.Value) (*types.Table, error) {
	if len(values) == 0 {
		return nil, execErrorf("no arguments provided for `select` operation")
	}

	if values[0].Kind != types.Str {
		return nil, execErrorf("table name expected to be string but found '%v'", values[0])
	}
	tableName := values[0].StrVal

	src, _ := db.FindTable(tableName)
	if src == nil {
		return nil, execErrorf("no such table '%s' in '%s' database", tableName, db.Name)
	}

	var colIdxs []int
	for _, v := range values[1:] {
		if v.Kind != types.Str {
			return nil, execErrorf("`select` operation can operate only on strings")
		}
		if v.StrVal == "*" {
			for i := range src.Schema.Cols {
				colIdxs = append(colIdxs, i)
			}
			continue
		}
		idx := src.Schema.IndexOf(v.StrVal)
		if idx < 0 {
			return nil, execErrorf("no such column `%s` in table `%s`", v.StrVal, src.Schema.Name)
		}
		colIdxs = append(colIdxs, idx)
	}

	schema := types.TableSchema{Name: "temp"}
	for _, idx := range colIdxs {
		schema.Cols = append(schema.Cols, src.Schema.Cols[idx])
	}

	result := &types.Table{Schema: schema}
	for _, row := range src.Rows {
		var newRow types.Row
		for _, idx := range colIdxs {
			newRow = append(newRow, row[idx])
		}
		result.Rows = append(result.Rows, newRow)
	}

	return result, nil
}

// execInsert implements the Insert opcode: the value stack bottom names the
// target table, the last |cols| entries are the new row in column order.
func execInsert(db *types.Database, values []types.Value) error {
	if len(values) == 0 {
		return execErrorf("table name not provided for `insert` operation")
	}
	if values[0].Kind != types.Str {
		return execErrorf("table name expected to be string but found '%v'", values[0])
	}
	tableName := values[0].StrVal

	table, _ := db.FindTable(tableName)
	if table == nil {
		return execErrorf("no such table '%s' in '%s' database", tableName, db.Name)
	}

	data := values[1:]
	colCount := len(table.Schema.Cols)
	if len(data) < colCount {
		return execErrorf("not enough arguments for `insert` operation, provided %d but needed %d", len(data), colCount)
	}

	rowValues := data[len(data)-colCount:]
	row := make(types.Row, colCount)
	for i, v := range rowValues {
		col := table.Schema.Cols[i]
		if v.Kind != col.DataType {
			return execErrorf("argument type doesn't match the column type, argument %v, column %v", v, col.DataType)
		}
		row[i] = v
	}

	table.Rows = append(table.Rows, row)
	return nil
}

// execCreate implements the Create opcode: the value stack bottom names the
// new table, the remainder is read as alternating (name, type) pairs.
func execCreate(db *types.Database, values []types.Value) error {
	if len(values) == 0 {
		return execErrorf("no arguments provided for `create` operation")
	}
	if values[0].Kind != types.Str {
		return execErrorf("name of the table expected to be a string but found `%v`", values[0])
	}
	tableName := values[0].StrVal

	if t, _ := db.FindTable(tableName); t != nil {
		return execErrorf("table '%s' already exists in '%s' database", tableName, db.Name)
	}

	var cols []types.Column
	rest := values[1:]
	for i := 0; i < len(rest); i += 2 {
		nameVal := rest[i]
		if nameVal.Kind != types.Str {
			return execErrorf("name of the column expected to be a string but found `%v`", nameVal)
		}
		if i+1 >= len(rest) {
			return execErrorf("column type is not provided")
		}
		typeVal := rest[i+1]
		if typeVal.Kind != types.Type {
			return execErrorf("unknown column type '%v' in `create` operation", typeVal)
		}
		if typeVal.TypeVal != types.Int && typeVal.TypeVal != types.Str {
			return execErrorf("unknown column type '%v' in `create` operation", typeVal.TypeVal)
		}
		cols = append(cols, types.Column{Name: nameVal.StrVal, DataType: typeVal.TypeVal})
	}

	db.AddTable(&types.Table{Schema: types.TableSchema{Name: tableName, Cols: cols}})
	return nil
}

// execDrop implements the Drop opcode: only the top of the value stack is
// consumed, naming the table to remove.
func execDrop(db *types.Database, values []types.Value) error {
	if len(values) == 0 {
		return execErrorf("no arguments provided for `drop` operation")
	}
	top := values[len(values)-1]
	if top.Kind != types.Str {
		return execErrorf("name of the table expected to be a string but found `%v`", top)
	}

	_, idx := db.FindTable(top.StrVal)
	if idx < 0 {
		return execErrorf("no such table '%s' in database '%s'", top.StrVal, db.Name)
	}
	db.RemoveTable(idx)
	return nil
}

// execDelete implements the Delete opcode: conditions are applied against
// table 0 of the database, which keeps only the rows on which at least one
// condition holds; every other row is removed.
func execDelete(db *types.Database, conditions []Condition) error {
	if len(db.Tables) == 0 {
		return execErrorf("database has no tables for `delete` operation")
	}
	table := db.Tables[0]

	// Delete removes a row iff every condition's predicate is false on it —
	// the same polarity as FilterOr's removal rule, not a plain conjunction,
	// even though it is built from the same accumulated condition stack a
	// filter-and would use. A bare `delete` with no preceding comparisons
	// therefore empties table 0: the condition set is vacuously "all false".
	kept := table.Rows[:0:0]
	for _, row := range table.Rows {
		if rowPasses(row, conditions, false) {
			kept = append(kept, row)
		}
	}
	table.Rows = kept
	return nil
}
