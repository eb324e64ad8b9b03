package engine

import (
	"github.com/ulindb/ulindb/internal/parser"
	"github.com/ulindb/ulindb/internal/types"
)

// applyFilter keeps only the rows of result that pass the accumulated
// conditions, conjunctively (and=true, FilterAnd) or disjunctively
// (and=false, FilterOr).
func applyFilter(result *types.Table, conditions []Condition, and bool) (*types.Table, error) {
	if result == nil {
		name := "filter-or"
		if and {
			name = "filter-and"
		}
		return nil, execErrorf("no result table to filter; `select` must run before `%s`", name)
	}

	kept := result.Rows[:0:0]
	for _, row := range result.Rows {
		if rowPasses(row, conditions, and) {
			kept = append(kept, row)
		}
	}
	result.Rows = kept
	return result, nil
}

// rowPasses reports whether row satisfies the condition set. With and=true
// (FilterAnd) a row passes iff every condition holds, so an empty condition
// set is a no-op. With and=false (FilterOr) a row passes iff at least one
// condition holds, so an empty condition set is vacuously false and removes
// every row.
func rowPasses(row types.Row, conditions []Condition, and bool) bool {
	if and {
		for _, c := range conditions {
			if !conditionHolds(row, c) {
				return false
			}
		}
		return true
	}
	for _, c := range conditions {
		if conditionHolds(row, c) {
			return true
		}
	}
	return false
}

func conditionHolds(row types.Row, c Condition) bool {
	val := row[c.ColIndex]
	switch val.Kind {
	case types.Int:
		return compareInt(val.IntVal, c.Value.IntVal, c.Op)
	case types.Str:
		return compareStr(val.StrVal, c.Value.StrVal, c.Op)
	default:
		return false
	}
}

func compareInt(a, b int32, op parser.OpKind) bool {
	switch op {
	case parser.Equal:
		return a == b
	case parser.NotEqual:
		return a != b
	case parser.Less:
		return a < b
	case parser.More:
		return a > b
	default:
		return false
	}
}

func compareStr(a, b string, op parser.OpKind) bool {
	switch op {
	case parser.Equal:
		return a == b
	case parser.NotEqual:
		return a != b
	case parser.Less:
		return a < b
	case parser.More:
		return a > b
	default:
		return false
	}
}
