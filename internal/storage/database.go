package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulindb/ulindb/internal/types"
)

// LoadDatabase scans dir for every *.tbls file, in directory-entry order,
// and loads each one together with its sibling .tbl row file. Unknown files
// are ignored. A dir that does not yet exist yields an empty database named
// after its base name.
func LoadDatabase(dir string) (*types.Database, error) {
	db := &types.Database{Name: filepath.Base(dir)}

	d, err := os.Open(dir)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading database directory %s: %w", dir, err)
	}
	// File.ReadDir, unlike os.ReadDir, does not sort the entries by name.
	entries, err := d.ReadDir(-1)
	d.Close()
	if err != nil {
		return nil, fmt.Errorf("reading database directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SchemaExt) {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), SchemaExt)
		schemaPath := filepath.Join(dir, entry.Name())
		rowPath := filepath.Join(dir, base+RowExt)

		f, err := os.Open(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("opening schema %s: %w", schemaPath, err)
		}
		schema, err := ParseSchema(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", schemaPath, err)
		}

		rows, err := ReadRows(rowPath, schema)
		if err != nil {
			return nil, err
		}

		db.AddTable(&types.Table{Schema: schema, Rows: rows})
	}

	return db, nil
}

// SaveDatabase writes every table of db into dir as a <name>.tbls/<name>.tbl
// pair, truncating any existing pair. Each table is written completely
// before the next begins; a failure partway through can leave some tables
// saved and others not.
func SaveDatabase(dir string, db *types.Database, warn func(string)) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	for _, table := range db.Tables {
		schemaPath := filepath.Join(dir, table.Schema.Name+SchemaExt)
		rowPath := filepath.Join(dir, table.Schema.Name+RowExt)

		f, err := os.Create(schemaPath)
		if err != nil {
			return fmt.Errorf("creating schema %s: %w", schemaPath, err)
		}
		err = WriteSchema(f, table.Schema)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("writing schema %s: %w", schemaPath, err)
		}
		if closeErr != nil {
			return fmt.Errorf("closing schema %s: %w", schemaPath, closeErr)
		}

		if err := WriteRows(rowPath, table.Schema, table.Rows, warn); err != nil {
			return err
		}
	}

	return nil
}
