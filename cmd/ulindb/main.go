package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ulindb/ulindb/internal/engine"
	"github.com/ulindb/ulindb/internal/export"
	"github.com/ulindb/ulindb/internal/parser"
	"github.com/ulindb/ulindb/internal/storage"
	"github.com/ulindb/ulindb/internal/types"
)

// replMode is one of the three states the REPL's line-accumulation
// state machine can be in.
type replMode int

const (
	modeCmd replMode = iota
	modeQuery
	modeMlQuery
)

func main() {
	cfg := engine.DefaultConfig()
	types.GlobalLogger = types.InitLogger(cfg.LogLevel, os.Stdout)

	db, err := storage.LoadDatabase(cfg.DataDir)
	if err != nil {
		fmt.Printf("failed to load database: %v\n", err)
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("failed to initialize readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	if err := runRepl(rl, db, cfg.DataDir); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	if err := storage.SaveDatabase(cfg.DataDir, db, func(msg string) { types.GlobalLogger.Warning("%s", msg) }); err != nil {
		fmt.Printf("failed to save database: %v\n", err)
		os.Exit(1)
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ulindb_history"
	}
	return filepath.Join(home, ".ulindb_history")
}

// runRepl drives the Cmd/Query/MlQuery state machine described in the REPL
// surface. It returns nil on a clean exit (either "exit" typed from Cmd, or
// EOF), and an error only for unexpected readline failures.
func runRepl(rl *readline.Instance, db *types.Database, dataDir string) error {
	mode := modeCmd
	var buffer strings.Builder
	depth := 0

	setPrompt := func() {
		switch mode {
		case modeCmd:
			rl.SetPrompt("> ")
		case modeQuery:
			rl.SetPrompt("query > ")
		case modeMlQuery:
			rl.SetPrompt("query : ")
		}
	}
	setPrompt()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				buffer.Reset()
				depth = 0
				mode = modeCmd
				setPrompt()
				continue
			}
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		trimmed := strings.TrimSpace(line)

		switch mode {
		case modeCmd:
			if trimmed == "exit" {
				return nil
			}
			if trimmed == "query" {
				mode = modeQuery
				setPrompt()
				continue
			}
			if name, ok := strings.CutPrefix(trimmed, "snapshot "); ok {
				runSnapshot(db, strings.TrimSpace(name), dataDir)
				continue
			}
			if trimmed != "" {
				fmt.Println("unknown command; type `query` to enter query mode")
			}

		case modeQuery, modeMlQuery:
			if mode == modeQuery && trimmed == "exit" {
				mode = modeCmd
				buffer.Reset()
				depth = 0
				setPrompt()
				continue
			}

			depth += bracketDelta(line)
			if buffer.Len() > 0 {
				buffer.WriteByte('\n')
			}
			buffer.WriteString(line)

			if depth > 0 {
				mode = modeMlQuery
				setPrompt()
				continue
			}

			query := buffer.String()
			buffer.Reset()
			mode = modeQuery
			setPrompt()

			if strings.TrimSpace(query) == "" {
				continue
			}
			runQuery(db, query)
		}
	}
}

// bracketDelta reports the net change in open-paren depth contributed by
// line: the parens are decoration the lexer strips, but an unmatched `(`
// signals more input is coming.
func bracketDelta(line string) int {
	delta := 0
	for _, r := range line {
		switch r {
		case '(':
			delta++
		case ')':
			delta--
		}
	}
	return delta
}

func runQuery(db *types.Database, query string) {
	program, err := parser.Parse(query)
	if err != nil {
		fmt.Printf("parse error: %v\n", err)
		return
	}

	result, err := engine.Execute(program, db, func(msg string) {
		types.GlobalLogger.Warning("%s", msg)
	})
	if err != nil {
		fmt.Printf("execution error: %v\n", err)
		return
	}

	if result != nil {
		printTable(result)
	}
}

func runSnapshot(db *types.Database, tableName, dataDir string) {
	if tableName == "" {
		fmt.Println("usage: snapshot <table>")
		return
	}
	table, _ := db.FindTable(tableName)
	if table == nil {
		fmt.Printf("no such table '%s'\n", tableName)
		return
	}
	path, err := export.Snapshot(table, dataDir)
	if err != nil {
		fmt.Printf("snapshot failed: %v\n", err)
		return
	}
	fmt.Printf("wrote %s\n", path)
}

func printTable(t *types.Table) {
	names := make([]string, len(t.Schema.Cols))
	for i, c := range t.Schema.Cols {
		names[i] = c.Name
	}
	fmt.Println(strings.Join(names, " | "))

	for _, row := range t.Rows {
		vals := make([]string, len(row))
		for i, v := range row {
			vals[i] = v.String()
		}
		fmt.Println(strings.Join(vals, " | "))
	}
	fmt.Printf("(%d rows)\n", len(t.Rows))
}
