// Package engine is the stack-based interpreter that executes a parsed
// Program against a mutable Database.
package engine

import (
	"fmt"

	"github.com/ulindb/ulindb/internal/parser"
	"github.com/ulindb/ulindb/internal/types"
)

// ExecError is a runtime error raised while interpreting a Program: wrong
// arity, a value of the wrong tag on the stack, an unknown table or column,
// or a type mismatch between a value and a column.
type ExecError struct {
	msg string
}

func (e *ExecError) Error() string { return e.msg }

func execErrorf(format string, args ...interface{}) *ExecError {
	return &ExecError{msg: fmt.Sprintf(format, args...)}
}

// Condition is one comparison accumulated by Equal/NotEqual/Less/More and
// later consumed by FilterAnd, FilterOr or Delete.
type Condition struct {
	ColIndex int
	Value    types.Value
	Op       parser.OpKind
}

// Execute interprets program against db, mutating it in place, and returns
// the result table populated by the last Select, FilterAnd or FilterOr to
// run, if any. Warnings (leftover stack residue) are non-fatal and are
// reported through warn, which may be nil.
func Execute(program parser.Program, db *types.Database, warn func(string)) (*types.Table, error) {
	if warn == nil {
		warn = func(string) {}
	}

	var values []types.Value
	var conditions []Condition
	var result *types.Table

	for i, op := range program {
		switch op.Kind {
		case parser.PushWord:
			values = append(values, op.Value)

		case parser.Select:
			table, err := execSelect(db, values)
			if err != nil {
				return nil, err
			}
			result = table
			values = nil

		case parser.Insert:
			if err := execInsert(db, values); err != nil {
				return nil, err
			}
			values = nil

		case parser.Create:
			if err := execCreate(db, values); err != nil {
				return nil, err
			}
			values = nil

		case parser.Drop:
			if err := execDrop(db, values); err != nil {
				return nil, err
			}
			values = values[:len(values)-1]

		case parser.Equal, parser.NotEqual, parser.Less, parser.More:
			curr, err := comparisonTarget(program[i+1:], db, result)
			if err != nil {
				return nil, err
			}
			cond, err := buildCondition(op.Kind, values, curr)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, cond)
			values = values[:len(values)-2]

		case parser.FilterAnd:
			table, err := applyFilter(result, conditions, true)
			if err != nil {
				return nil, err
			}
			result = table
			conditions = nil

		case parser.FilterOr:
			table, err := applyFilter(result, conditions, false)
			if err != nil {
				return nil, err
			}
			result = table
			conditions = nil

		case parser.Delete:
			if err := execDelete(db, conditions); err != nil {
				return nil, err
			}
			conditions = nil

		default:
			return nil, execErrorf("unknown opcode %v", op.Kind)
		}
	}

	if len(values) > 0 {
		warn(fmt.Sprintf("%d unused words in the stack", len(values)))
	}
	if len(conditions) > 0 {
		warn(fmt.Sprintf("%d unused conditions in the stack", len(conditions)))
	}

	return result, nil
}

// comparisonTarget finds the schema a comparison resolves its column against:
// table 0 of the database if a Delete opcode appears later in the program
// before any other consumer (FilterAnd or FilterOr), otherwise the current
// result slot.
func comparisonTarget(rest parser.Program, db *types.Database, result *types.Table) (*types.Table, error) {
	for _, op := range rest {
		if op.Kind == parser.FilterAnd || op.Kind == parser.FilterOr {
			break
		}
		if op.Kind == parser.Delete {
			if len(db.Tables) == 0 {
				return nil, execErrorf("database has no tables for `delete` operation")
			}
			return db.Tables[0], nil
		}
	}
	if result == nil {
		return nil, execErrorf("no result table available for comparison; `select` must run first unless the comparison feeds `delete`")
	}
	return result, nil
}

func opSymbol(kind parser.OpKind) string {
	switch kind {
	case parser.Equal:
		return "=="
	case parser.NotEqual:
		return "!="
	case parser.Less:
		return "<"
	case parser.More:
		return ">"
	default:
		return kind.String()
	}
}

func buildCondition(kind parser.OpKind, values []types.Value, curr *types.Table) (Condition, error) {
	sym := opSymbol(kind)
	if len(values) < 2 {
		return Condition{}, execErrorf("not enough arguments for `%s` operation, provided %d but needed 2", sym, len(values))
	}

	lhs := values[len(values)-2]
	rhs := values[len(values)-1]

	if lhs.Kind != types.Str {
		return Condition{}, execErrorf("invalid argument for `%s` operation, expected string but found %v", sym, lhs)
	}

	idx := curr.Schema.IndexOf(lhs.StrVal)
	if idx < 0 {
		return Condition{}, execErrorf("no such column `%s` in table `%s`", lhs.StrVal, curr.Schema.Name)
	}

	colType := curr.Schema.Cols[idx].DataType
	if rhs.Kind != colType {
		return Condition{}, execErrorf("invalid argument for `%s` operation expected type %v but found type %v", sym, colType, rhs.Kind)
	}

	return Condition{ColIndex: idx, Value: rhs, Op: kind}, nil
}
