package engine

import "github.com/ulindb/ulindb/internal/types"

// Config holds the settings the REPL entry point needs to bring up a
// database: where it lives on disk and how verbose the ambient logger
// should be.
type Config struct {
	// DataDir is the directory holding the database's .tbls/.tbl files.
	DataDir string

	// LogLevel controls the verbosity of types.GlobalLogger.
	LogLevel types.LogLevel
}

// DefaultConfig returns the Config cmd/ulindb/main.go runs with absent any
// overrides.
func DefaultConfig() Config {
	return Config{
		DataDir:  "./database",
		LogLevel: types.LogLevelInfo,
	}
}
