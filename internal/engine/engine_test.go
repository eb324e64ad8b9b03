package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulindb/ulindb/internal/parser"
	"github.com/ulindb/ulindb/internal/types"
)

func mustParse(t *testing.T, query string) parser.Program {
	t.Helper()
	program, err := parser.Parse(query)
	require.NoError(t, err, query)
	return program
}

func newPeopleDB() *types.Database {
	return &types.Database{
		Name: "testdb",
		Tables: []*types.Table{
			{
				Schema: types.TableSchema{
					Name: "t",
					Cols: []types.Column{
						{Name: "id", DataType: types.Int},
						{Name: "name", DataType: types.Str},
					},
				},
				Rows: []types.Row{
					{types.IntValue(1), types.StrValue("a")},
					{types.IntValue(2), types.StrValue("b")},
					{types.IntValue(3), types.StrValue("c")},
				},
			},
		},
	}
}

func TestExecuteCreate(t *testing.T) {
	db := &types.Database{Name: "testdb"}
	program := mustParse(t, "clients ( id Int ) ( name Str ) create")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	require.Len(t, db.Tables, 1)
	assert.Equal(t, "clients", db.Tables[0].Schema.Name)
	assert.Equal(t, []types.Column{
		{Name: "id", DataType: types.Int},
		{Name: "name", DataType: types.Str},
	}, db.Tables[0].Schema.Cols)
	assert.Empty(t, db.Tables[0].Rows)
}

func TestExecuteDrop(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "t drop")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, db.Tables)
}

func TestExecuteSelectFilterAnd(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "t * select id 1 > filter-and")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []types.Row{
		{types.IntValue(2), types.StrValue("b")},
		{types.IntValue(3), types.StrValue("c")},
	}, result.Rows)
}

func TestExecuteDeleteMatchesFilterOrPolarity(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "id 2 != delete")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	require.Len(t, db.Tables, 1)
	assert.Equal(t, []types.Row{
		{types.IntValue(1), types.StrValue("a")},
		{types.IntValue(3), types.StrValue("c")},
	}, db.Tables[0].Rows)
}

func TestExecuteDeleteWithNoConditionsEmptiesTable(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "delete")

	_, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Empty(t, db.Tables[0].Rows)
}

func TestExecuteFilterOrWithNoConditionsRemovesAllRows(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "t * select filter-or")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestExecuteFilterAndWithNoConditionsIsNoOp(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "t * select filter-and")

	result, err := Execute(program, db, nil)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 3)
}

func TestExecuteInsert(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, `"t" 4 "d" insert`)

	_, err := Execute(program, db, nil)
	require.NoError(t, err)

	table, _ := db.FindTable("t")
	require.Len(t, table.Rows, 4)
	assert.Equal(t, types.Row{types.IntValue(4), types.StrValue("d")}, table.Rows[3])
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		db    *types.Database
		want  string
	}{
		{
			name:  "select unknown table",
			query: "nope * select",
			db:    &types.Database{Name: "empty"},
			want:  "no such table 'nope' in 'empty' database",
		},
		{
			name:  "select unknown column",
			query: "t bogus select",
			db:    newPeopleDB(),
			want:  "no such column `bogus` in table `t`",
		},
		{
			name:  "insert wrong arity",
			query: `"t" 4 insert`,
			db:    newPeopleDB(),
			want:  "not enough arguments for `insert` operation, provided 1 but needed 2",
		},
		{
			name:  "insert type mismatch",
			query: `"t" "oops" "d" insert`,
			db:    newPeopleDB(),
			want:  "argument type doesn't match the column type",
		},
		{
			name:  "create duplicate table",
			query: "t create",
			db:    newPeopleDB(),
			want:  "table 't' already exists in 'testdb' database",
		},
		{
			name:  "drop unknown table",
			query: "nope drop",
			db:    newPeopleDB(),
			want:  "no such table 'nope' in database 'testdb'",
		},
		{
			name:  "comparison with no result table",
			query: "id 1 > filter-and",
			db:    &types.Database{Name: "empty"},
			want:  "no result table available for comparison",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			program := mustParse(t, test.query)
			_, err := Execute(program, test.db, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestExecuteWarnsOnLeftoverStack(t *testing.T) {
	db := newPeopleDB()
	program := mustParse(t, "t * select 42")

	var warnings []string
	_, err := Execute(program, db, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unused words")
}
