package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/nutrients"
)

// Table is the SQLite table WriteSQLite creates.
const Table = "foods"

var sqliteColumnTypes = map[string]string{
	"id": "TEXT PRIMARY KEY", "portion_g": "REAL",
	"energy_kcal": "REAL", "protein_g": "REAL", "fat_g": "REAL", "carbs_g": "REAL",
	"fiber_g": "REAL", "calcium_mg": "REAL", "iron_mg": "REAL", "sodium_mg": "REAL",
}

// sqliteColumns is Columns plus the record UUID.
func sqliteColumns() []string {
	return append(append([]string{}, Columns...), "uuid")
}

// WriteSQLite replaces the database at path with one holding a single foods
// table. Absent numeric values are stored as SQL NULL.
func WriteSQLite(records []*model.FoodRecord, path string) error {
	if path == "-" {
		return fmt.Errorf("sqlite output needs a file path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	cols := sqliteColumns()
	defs := make([]string, 0, len(cols))
	quoted := make([]string, 0, len(cols))
	for _, c := range cols {
		t := sqliteColumnTypes[c]
		if t == "" {
			t = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, t))
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	if _, err := db.Exec(`CREATE TABLE "` + Table + `" (` + strings.Join(defs, ",") + `)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(`INSERT INTO "` + Table + `" (` + strings.Join(quoted, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		row, err := Encode(r)
		if err != nil {
			tx.Rollback()
			return err
		}
		args := make([]any, 0, len(cols))
		for i, c := range Columns {
			args = append(args, sqliteValue(c, row[i]))
		}
		args = append(args, RecordUUID(r.ID).String())
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_foods_category ON foods(category)`,
		`CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name)`,
	} {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}

// sqliteValue maps a CSV cell onto a column value: NULL stays NULL in
// numeric columns, numbers become REAL.
func sqliteValue(col, cell string) any {
	t, numeric := sqliteColumnTypes[col]
	if !numeric || strings.HasPrefix(t, "TEXT") {
		return cell
	}
	if v, ok := nutrients.ParseValue(cell); ok {
		return v
	}
	return nil
}
