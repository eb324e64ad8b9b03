package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulindb/ulindb/internal/types"
)

func TestLoadDatabaseMissingDirIsEmpty(t *testing.T) {
	db, err := LoadDatabase(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, db.Tables)
}

func TestSaveLoadDatabaseRoundTrip(t *testing.T) {
	dir := t.TempDir()

	db := &types.Database{
		Name: filepath.Base(dir),
		Tables: []*types.Table{
			{
				Schema: types.TableSchema{
					Name: "people",
					Cols: []types.Column{
						{Name: "id", DataType: types.Int},
						{Name: "name", DataType: types.Str},
					},
				},
				Rows: []types.Row{
					{types.IntValue(1), types.StrValue("alice")},
					{types.IntValue(2), types.StrValue("bob")},
				},
			},
			{
				Schema: types.TableSchema{
					Name: "empty_table",
					Cols: []types.Column{
						{Name: "n", DataType: types.Int},
					},
				},
			},
		},
	}

	require.NoError(t, SaveDatabase(dir, db, nil))

	assert.FileExists(t, filepath.Join(dir, "people.tbls"))
	assert.FileExists(t, filepath.Join(dir, "people.tbl"))
	assert.FileExists(t, filepath.Join(dir, "empty_table.tbls"))
	assert.FileExists(t, filepath.Join(dir, "empty_table.tbl"))

	loaded, err := LoadDatabase(dir)
	require.NoError(t, err)
	require.Len(t, loaded.Tables, 2)

	people, _ := loaded.FindTable("people")
	require.NotNil(t, people)
	assert.Equal(t, db.Tables[0].Schema, people.Schema)
	assert.Equal(t, db.Tables[0].Rows, people.Rows)

	empty, _ := loaded.FindTable("empty_table")
	require.NotNil(t, empty)
	assert.Empty(t, empty.Rows)
}

func TestLoadDatabaseIgnoresUnknownFiles(t *testing.T) {
	dir := t.TempDir()
	db := &types.Database{
		Tables: []*types.Table{
			{Schema: types.TableSchema{Name: "t", Cols: []types.Column{{Name: "n", DataType: types.Int}}}},
		},
	}
	require.NoError(t, SaveDatabase(dir, db, nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a schema"), 0o644))

	loaded, err := LoadDatabase(dir)
	require.NoError(t, err)
	assert.Len(t, loaded.Tables, 1)
}
