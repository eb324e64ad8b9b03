// Package parser turns postfix query text into a linear Program of opcodes
// the engine package can execute.
package parser

import (
	"strconv"

	"github.com/ulindb/ulindb/internal/lexer"
	"github.com/ulindb/ulindb/internal/types"
)

// OpKind identifies one of the twelve opcodes the query language compiles
// down to.
type OpKind int

const (
	PushWord OpKind = iota
	Select
	Insert
	Delete
	FilterAnd
	FilterOr
	Equal
	NotEqual
	Less
	More
	Create
	Drop
)

var operatorKeywords = map[string]OpKind{
	"select":     Select,
	"insert":     Insert,
	"delete":     Delete,
	"filter-and": FilterAnd,
	"filter-or":  FilterOr,
	"create":     Create,
	"drop":       Drop,
	"==":         Equal,
	"!=":         NotEqual,
	"<":          Less,
	">":          More,
}

func (k OpKind) String() string {
	switch k {
	case PushWord:
		return "PushWord"
	case Select:
		return "Select"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case FilterAnd:
		return "FilterAnd"
	case FilterOr:
		return "FilterOr"
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case Less:
		return "Less"
	case More:
		return "More"
	case Create:
		return "Create"
	case Drop:
		return "Drop"
	default:
		return "Unknown"
	}
}

// IsComparison reports whether k is one of the four comparison opcodes that
// build a Condition.
func (k OpKind) IsComparison() bool {
	return k == Equal || k == NotEqual || k == Less || k == More
}

// Op is one instruction of a Program. Value is only meaningful when Kind is
// PushWord.
type Op struct {
	Kind  OpKind
	Value types.Value
}

// Program is the opcode sequence a query compiles to.
type Program []Op

// LexError is returned by Parse when the query text cannot be tokenized.
// The source implementation only ever has one cause: an unterminated string
// literal.
type LexError struct {
	Cause error
}

func (e *LexError) Error() string { return e.Cause.Error() }
func (e *LexError) Unwrap() error { return e.Cause }

// Parse compiles query text into a Program. Unknown words are never an
// error: they become string-literal pushes. The only failure mode is an
// unclosed string literal.
func Parse(query string) (Program, error) {
	l := lexer.New(query)
	var program Program

	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, &LexError{Cause: err}
		}
		if tok.Type == lexer.EOF {
			break
		}
		if tok.Type == lexer.STRING {
			program = append(program, Op{Kind: PushWord, Value: types.StrValue(tok.Literal)})
			continue
		}
		program = append(program, classifyWord(tok.Literal))
	}

	return program, nil
}

func classifyWord(word string) Op {
	if kind, ok := operatorKeywords[word]; ok {
		return Op{Kind: kind}
	}
	if dt, ok := types.ParseDataType(word); ok {
		return Op{Kind: PushWord, Value: types.TypeValue(dt)}
	}
	if value, err := strconv.ParseInt(word, 10, 32); err == nil {
		return Op{Kind: PushWord, Value: types.IntValue(int32(value))}
	}
	return Op{Kind: PushWord, Value: types.StrValue(word)}
}
