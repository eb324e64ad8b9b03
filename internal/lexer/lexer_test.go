package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerNextToken(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
	}{
		{
			name:  "single word",
			input: "select",
			tokens: []Token{
				{Type: WORD, Literal: "select"},
			},
		},
		{
			name:  "words separated by whitespace",
			input: "select a tablex",
			tokens: []Token{
				{Type: WORD, Literal: "select"},
				{Type: WORD, Literal: "a"},
				{Type: WORD, Literal: "tablex"},
			},
		},
		{
			name:  "string literal",
			input: `"hello world"`,
			tokens: []Token{
				{Type: STRING, Literal: "hello world"},
			},
		},
		{
			name:  "mixed words and strings",
			input: `create "tablex" ( a Int )`,
			tokens: []Token{
				{Type: WORD, Literal: "create"},
				{Type: STRING, Literal: "tablex"},
				{Type: WORD, Literal: "a"},
				{Type: WORD, Literal: "Int"},
			},
		},
		{
			name:  "parens stripped from words but not from strings",
			input: `a(b) "c(d)"`,
			tokens: []Token{
				{Type: WORD, Literal: "ab"},
				{Type: STRING, Literal: "c(d)"},
			},
		},
		{
			name:   "empty input",
			input:  "",
			tokens: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := New(test.input)
			var got []Token
			for {
				tok, err := l.NextToken()
				require.NoError(t, err, test.input)
				got = append(got, tok)
				if tok.Type == EOF {
					break
				}
			}
			assert.Equal(t, append(append([]Token{}, test.tokens...), Token{Type: EOF}), got, test.input)
		})
	}
}

func TestLexerUnclosedString(t *testing.T) {
	l := New(`select "unterminated`)

	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, WORD, tok.Type)

	_, err = l.NextToken()
	assert.ErrorIs(t, err, ErrUnclosedString)
}
