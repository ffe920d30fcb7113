package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/mverbeek/saldo/store"
)

type InspectCmd struct {
	Store string `arg:"" type:"existingfile" help:"SQLite store to inspect."`
	Table string `help:"Only show the named table."`
	Limit int    `default:"5" help:"Number of sample rows per table."`
}

func (cmd *InspectCmd) Run(ctx *kong.Context, globals *Globals) error {
	db, err := store.Open(cmd.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := store.Tables(db)
	if err != nil {
		return err
	}
	if cmd.Table != "" {
		if !contains(tables, cmd.Table) {
			return fmt.Errorf("table %q not found in %s", cmd.Table, cmd.Store)
		}
		tables = []string{cmd.Table}
	}
	if len(tables) == 0 {
		printInfof(ctx.Stdout, "No tables in %s", cmd.Store)
		return nil
	}

	for _, name := range tables {
		count, err := store.Count(db, name)
		if err != nil {
			return err
		}
		printInfof(ctx.Stdout, "%s: %d rows", name, count)

		if cmd.Limit > 0 {
			if err := printSample(ctx, db, name, cmd.Limit); err != nil {
				return err
			}
		}
	}

	return nil
}

// printSample renders up to limit rows of the table with columns
// aligned on their display width.
func printSample(ctx *kong.Context, db *sql.DB, name string, limit int) error {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %q LIMIT %d`, name, limit))
	if err != nil {
		return fmt.Errorf("sample %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	lines := [][]string{cols}
	for rows.Next() {
		values := make([]any, len(cols))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return err
		}
		line := make([]string, len(cols))
		for i, v := range values {
			line[i] = renderValue(*v.(*any))
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	widths := make([]int, len(cols))
	for _, line := range lines {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, line := range lines {
		padded := make([]string, len(line))
		for i, cell := range line {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s\n", strings.TrimRight(strings.Join(padded, "  "), " "))
	}
	_, _ = fmt.Fprintln(ctx.Stdout)

	return nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
