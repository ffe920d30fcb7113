package store

import (
	"fmt"
	"strings"
)

// Source identifies one table to copy into a combined store.
type Source struct {
	// Path of the source SQLite store.
	Path string

	// Table to copy. The combined store uses the same table name.
	Table string
}

// CombineResult reports the row count copied per source table.
type CombineResult struct {
	Table string
	Rows  int
}

// Combine creates a new store at outputPath holding a copy of each
// source's table. Every source is attached, copied and detached in
// turn, and the copied row count is verified against the source's count
// before moving on; a mismatch aborts the merge.
//
// The output store must not already contain any of the tables; callers
// that want to overwrite an existing combined store remove the file
// first.
func Combine(outputPath string, sources ...Source) ([]CombineResult, error) {
	db, err := Open(outputPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	results := make([]CombineResult, 0, len(sources))
	for i, src := range sources {
		alias := fmt.Sprintf("source%d", i+1)

		if _, err := db.Exec(fmt.Sprintf(`ATTACH %s AS %s`, quoteString(src.Path), alias)); err != nil {
			return results, fmt.Errorf("attach %s: %w", src.Path, err)
		}

		var want int
		err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s.%s`, alias, quoteIdent(src.Table))).Scan(&want)
		if err != nil {
			return results, fmt.Errorf("count %s in %s: %w", src.Table, src.Path, err)
		}

		_, err = db.Exec(fmt.Sprintf(`CREATE TABLE %s AS SELECT * FROM %s.%s`,
			quoteIdent(src.Table), alias, quoteIdent(src.Table)))
		if err != nil {
			return results, fmt.Errorf("copy table %q: %w", src.Table, err)
		}

		if _, err := db.Exec(fmt.Sprintf(`DETACH %s`, alias)); err != nil {
			return results, fmt.Errorf("detach %s: %w", src.Path, err)
		}

		got, err := Count(db, src.Table)
		if err != nil {
			return results, err
		}
		if got != want {
			return results, fmt.Errorf("table %q: copied %d rows, source has %d", src.Table, got, want)
		}

		results = append(results, CombineResult{Table: src.Table, Rows: got})
	}

	return results, nil
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
