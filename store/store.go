// Package store persists tables to a lightweight on-disk SQLite store
// and merges multiple stores into one. Each pipeline run replaces its
// table wholesale; the store is opened, written and closed within a
// single run, so no locking beyond file ownership is needed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mverbeek/saldo/table"
)

// WriteMode controls behavior when the target table already exists.
type WriteMode int

const (
	// Replace drops any existing table of the same name first.
	Replace WriteMode = iota

	// Append adds rows to an existing table, creating it if absent.
	Append

	// Fail errors if the table already exists.
	Fail
)

// Open opens (or creates) the SQLite store at path, creating parent
// directories as needed.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return db, nil
}

// Write persists tbl as the named table. The schema decides the column
// affinity of declared columns; undeclared columns are stored as text.
// All rows are written in one transaction and the resulting row count is
// verified against the insert count, so a failed write never leaves a
// partial table behind.
func Write(db *sql.DB, name string, tbl *table.Table, schema table.Schema, mode WriteMode) (int, error) {
	exists, err := tableExists(db, name)
	if err != nil {
		return 0, err
	}
	if exists && mode == Fail {
		return 0, fmt.Errorf("table %q already exists", name)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is a no-op after commit

	if mode == Replace {
		if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(name))); err != nil {
			return 0, fmt.Errorf("drop table %q: %w", name, err)
		}
		exists = false
	}
	if !exists {
		if _, err := tx.Exec(createDDL(name, tbl, schema)); err != nil {
			return 0, fmt.Errorf("create table %q: %w", name, err)
		}
	}

	stmt, err := tx.Prepare(insertSQL(name, tbl))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := 0; i < tbl.Len(); i++ {
		args := make([]any, len(tbl.Columns()))
		for j, col := range tbl.Columns() {
			args[j] = driverValue(tbl.Cell(i, col), schema[col])
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	count, err := Count(db, name)
	if err != nil {
		return 0, err
	}
	if mode != Append && count != inserted {
		return count, fmt.Errorf("table %q holds %d rows, expected %d", name, count, inserted)
	}

	return count, nil
}

// Count returns the number of rows in the named table.
func Count(db *sql.DB, name string) (int, error) {
	var count int
	if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdent(name))).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows of %q: %w", name, err)
	}
	return count, nil
}

// Tables lists the user tables of the store, in name order.
func Tables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return count > 0, nil
}

func createDDL(name string, tbl *table.Table, schema table.Schema) string {
	defs := make([]string, 0, len(tbl.Columns()))
	for _, col := range tbl.Columns() {
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(col), sqlType(schema[col])))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", quoteIdent(name), strings.Join(defs, ",\n\t"))
}

func insertSQL(name string, tbl *table.Table) string {
	cols := make([]string, len(tbl.Columns()))
	marks := make([]string, len(tbl.Columns()))
	for i, col := range tbl.Columns() {
		cols[i] = quoteIdent(col)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(name), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// sqlType maps a declared column type to its SQLite affinity. Columns
// without a declared type default to TEXT.
func sqlType(ty table.Type) string {
	switch ty {
	case table.TypeNumber:
		return "REAL"
	case table.TypeInteger:
		return "INTEGER"
	case table.TypeTime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// driverValue converts a cell to its database representation. Decimals
// only become floats (or ints, for integer columns) at this boundary.
func driverValue(c table.Cell, ty table.Type) any {
	switch c.Kind() {
	case table.KindNull:
		return nil
	case table.KindText:
		s, _ := c.Text()
		return s
	case table.KindNumber:
		d, _ := c.Number()
		if ty == table.TypeInteger {
			return d.IntPart()
		}
		return d.InexactFloat64()
	case table.KindTime:
		t, _ := c.Time()
		return t.Format("2006-01-02 15:04:05")
	default:
		return nil
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
